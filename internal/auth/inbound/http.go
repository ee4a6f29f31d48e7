package inbound

import (
	"net/http"

	"github.com/blueseamans/mailanes/internal/pkg/router"
	"github.com/blueseamans/mailanes/internal/pkg/session"
)

// PublicRoutes lists the GET routes reachable without a session.
var PublicRoutes = []string{"/", "/hello", "/login", "/github-callback", "/logout", "/robots.txt", "/version"}

type sessionIssuer interface {
	Issue(r *http.Request, login string) (*http.Cookie, error)
	Cookies() session.Cookies
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, sess sessionIssuer) {
	end := &HTTPEndpoint{uc: uc, session: sess}

	r.GET("/", end.Index)
	r.GET("/hello", end.Hello)
	r.GET("/login", end.Login)
	r.GET("/github-callback", end.Callback)
	r.GET("/logout", end.Logout)
	r.GET("/robots.txt", end.Robots)
	r.GET("/version", end.Version)

	r.GET("/api/v1/auth/me", end.Me)
}
