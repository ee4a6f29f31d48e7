package main

import (
	"context"

	"github.com/blueseamans/mailanes/internal/app"
)

// @title           Mailanes API
// @version         1.0
// @description     Mailanes manages recipient lists, letter lanes and email campaigns.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  CookieAuth
// @in cookie
// @name glogin
// @description Session cookie set by the GitHub login.
func main() {
	application := app.New()
	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()
	application.Stop(ctx)
}
