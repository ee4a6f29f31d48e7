package inbound

import (
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, cfg config.Config, uc uc) {
	end := &HTTPEndpoint{uc: uc, cfg: cfg}

	r.GET("/api/v1/lists", end.ListLists)
	r.POST("/api/v1/lists", end.CreateList)
	r.GET("/api/v1/lists/:id", end.GetList)
	r.GET("/api/v1/lists/:id/recipients", end.ListRecipients)
	r.POST("/api/v1/lists/:id/recipients", end.AddRecipient)
	r.POST("/api/v1/lists/:id/import", end.ImportRecipients)
	r.GET("/api/v1/lists/:id/export", end.ExportRecipients)

	r.GET("/api/v1/recipients/:id", end.GetRecipient)
	r.PUT("/api/v1/recipients/:id/yaml", end.SaveRecipientYAML)
	r.POST("/api/v1/recipients/:id/toggle", end.ToggleRecipient)

	r.GET("/api/v1/lanes", end.ListLanes)
	r.POST("/api/v1/lanes", end.CreateLane)
	r.GET("/api/v1/lanes/:id", end.GetLane)
	r.POST("/api/v1/lanes/:id/letters", end.CreateLetter)

	r.GET("/api/v1/letters/:id", end.GetLetter)
	r.PUT("/api/v1/letters/:id", end.SaveLetter)
	r.POST("/api/v1/letters/:id/toggle", end.ToggleLetter)

	r.GET("/api/v1/campaigns", end.ListCampaigns)
	r.POST("/api/v1/campaigns", end.CreateCampaign)
	r.GET("/api/v1/campaigns/:id", end.GetCampaign)
	r.PUT("/api/v1/campaigns/:id/yaml", end.SaveCampaignYAML)
	r.POST("/api/v1/campaigns/:id/toggle", end.ToggleCampaign)
}
