package inbound

import (
	"github.com/blueseamans/mailanes/internal/pkg/router"
)

// PublicRoutes lists the routes reachable without a session.
var PublicRoutes = []string{"/unsubscribe"}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/campaigns/:id/report", end.Report)
	r.POST("/api/v1/campaigns/:id/fetch", end.FetchCampaign)
	r.GET("/unsubscribe", end.Unsubscribe)
}
