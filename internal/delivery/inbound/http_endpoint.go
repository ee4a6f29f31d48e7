package inbound

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/delivery/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// Report returns the deliveries of a campaign.
// @Summary Campaign report
// @Description Returns the newest deliveries of a campaign and the number of deliveries per status.
// @Tags Delivery
// @Security CookieAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Param limit query int false "Number of deliveries, at most 1000"
// @Success 200 {object} router.successResponse{data=ReportResponse} "Report"
// @Failure 400 {object} router.errorResponse "Invalid parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Campaign not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/campaigns/{id}/report [get]
func (h *HTTPEndpoint) Report(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	rep, err := h.uc.Report(r.Context(), usecase.ReportInput{Campaign: id, Limit: limit})
	if err != nil {
		return nil, err
	}

	return ReportResponse{
		Campaign: rep.CampaignID,
		Title:    rep.Title,
		Active:   rep.Active,
		Counts: lo.MapKeys(rep.Counts, func(_ int64, status entity.Status) string {
			return status.String()
		}),
		Deliveries: lo.Map(rep.Deliveries, func(d entity.Delivery, _ int) DeliveryResponse {
			return DeliveryResponse{
				ID:          d.ID,
				Email:       d.Email,
				LetterTitle: d.LetterTitle,
				Status:      d.Status.String(),
				Attempts:    d.Attempts,
				Created:     d.Created,
			}
		}),
	}, nil
}

// FetchCampaign runs the delivery pipeline for one campaign now.
// @Summary Fetch campaign
// @Description Sends every letter of the campaign that is due, within its speed.
// @Tags Delivery
// @Security CookieAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} router.successResponse{data=FetchResponse} "Pipeline result"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Campaign not found"
// @Failure 409 {object} router.errorResponse "Campaign is not active"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/campaigns/{id}/fetch [post]
func (h *HTTPEndpoint) FetchCampaign(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	res, err := h.uc.FetchCampaign(r.Context(), usecase.FetchCampaignInput{ID: id})
	if err != nil {
		return nil, err
	}

	return FetchResponse{Sent: res.Sent, Failed: res.Failed, Skipped: res.Skipped}, nil
}

// Unsubscribe handles the link found in every letter.
// @Summary Unsubscribe
// @Tags Delivery
// @Produce plain
// @Param token query string true "Unsubscribe token"
// @Success 200 {string} string "Confirmation"
// @Failure 400 {object} router.errorResponse "Invalid token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /unsubscribe [get]
func (h *HTTPEndpoint) Unsubscribe(r *router.Request) (any, error) {
	if err := h.uc.Unsubscribe(r.Context(), usecase.UnsubscribeInput{Token: r.GetQuery("token")}); err != nil {
		return nil, err
	}

	return router.Text{Body: "You have been unsubscribed. No more letters will be sent to you.\n", Code: http.StatusOK}, nil
}
