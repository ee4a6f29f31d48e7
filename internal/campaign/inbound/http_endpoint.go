package inbound

import (
	"github.com/samber/lo"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/campaign/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/router"
)

const defaultImportMaxBytes = 10 << 20

type HTTPEndpoint struct {
	uc  uc
	cfg config.Config
}

// ListLists returns lists owned by the current user.
// @Summary List lists
// @Description Returns all recipient lists of the authenticated user with recipient counts.
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ListsResponse} "Lists"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lists [get]
func (h *HTTPEndpoint) ListLists(r *router.Request) (any, error) {
	items, err := h.uc.ListLists(r.Context())
	if err != nil {
		return nil, err
	}

	return ListsResponse{Lists: lo.Map(items, func(item entity.List, _ int) ListResponse {
		return toListResponse(item)
	})}, nil
}

// CreateList creates an empty list.
// @Summary Create list
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body CreateListRequest true "List payload"
// @Success 201 {object} router.successResponse{data=CreatedResponse} "Created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lists [post]
func (h *HTTPEndpoint) CreateList(r *router.Request) (any, error) {
	var req CreateListRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	id, err := h.uc.CreateList(r.Context(), usecase.CreateListInput{Title: req.Title})
	if err != nil {
		return nil, err
	}

	return CreatedResponse{ID: id}, nil
}

// GetList returns a single list.
// @Summary Get list
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} router.successResponse{data=ListResponse} "List"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "List not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lists/{id} [get]
func (h *HTTPEndpoint) GetList(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	item, err := h.uc.GetList(r.Context(), usecase.GetListInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toListResponse(*item), nil
}

// ListRecipients returns one page of recipients of a list.
// @Summary List recipients
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "List ID"
// @Param page query int false "Page number starting at 1"
// @Param size query int false "Page size, at most 100"
// @Success 200 {object} router.successResponse{data=RecipientsResponse} "Recipients"
// @Failure 400 {object} router.errorResponse "Invalid parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "List not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lists/{id}/recipients [get]
func (h *HTTPEndpoint) ListRecipients(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ListRecipients(r.Context(), usecase.ListRecipientsInput{List: id, Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	return RecipientsResponse{
		Recipients: lo.Map(out.Recipients, func(item entity.Recipient, _ int) RecipientResponse {
			return toRecipientResponse(item)
		}),
		page:  out.Page,
		size:  out.Size,
		total: out.Total,
	}, nil
}

// AddRecipient adds a single recipient to a list.
// @Summary Add recipient
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param request body AddRecipientRequest true "Recipient payload"
// @Success 201 {object} router.successResponse{data=CreatedResponse} "Created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "List not found"
// @Failure 409 {object} router.errorResponse "Recipient already in list"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lists/{id}/recipients [post]
func (h *HTTPEndpoint) AddRecipient(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req AddRecipientRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	rid, err := h.uc.AddRecipient(r.Context(), usecase.AddRecipientInput{
		List:  id,
		Email: req.Email,
		First: req.First,
		Last:  req.Last,
	})
	if err != nil {
		return nil, err
	}

	return CreatedResponse{ID: rid}, nil
}

// ImportRecipients imports recipients from an uploaded CSV file.
// @Summary Import recipients
// @Description Columns are email, first and last. Duplicates and invalid rows are skipped.
// @Tags Campaign
// @Security CookieAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "List ID"
// @Param file formData file true "CSV file"
// @Success 200 {object} router.successResponse{data=ImportResponse} "Import result"
// @Failure 400 {object} router.errorResponse "Invalid form"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "List not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lists/{id}/import [post]
func (h *HTTPEndpoint) ImportRecipients(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	maxBytes := h.cfg.GetInt64("modules.campaign.import_max_size_bytes")
	if maxBytes <= 0 {
		maxBytes = defaultImportMaxBytes
	}

	file, err := r.ReadSingleFile("file", maxBytes)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ImportRecipients(r.Context(), usecase.ImportRecipientsInput{List: id, File: file})
	if err != nil {
		return nil, err
	}

	return ImportResponse{Created: out.Created, Skipped: out.Skipped}, nil
}

// ExportRecipients exports a list as CSV and returns a temporary download URL.
// @Summary Export recipients
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} router.successResponse{data=ExportResponse} "Export"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "List not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lists/{id}/export [get]
func (h *HTTPEndpoint) ExportRecipients(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ExportRecipients(r.Context(), usecase.ExportRecipientsInput{List: id})
	if err != nil {
		return nil, err
	}

	return ExportResponse{URL: out.URL, ExpiresAt: out.ExpiresAt, Total: out.Total}, nil
}

// GetRecipient returns a recipient of a list owned by the current user.
// @Summary Get recipient
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "Recipient ID"
// @Success 200 {object} router.successResponse{data=RecipientResponse} "Recipient"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Recipient not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/recipients/{id} [get]
func (h *HTTPEndpoint) GetRecipient(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	item, err := h.uc.GetRecipient(r.Context(), usecase.GetRecipientInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toRecipientResponse(*item), nil
}

// SaveRecipientYAML replaces the yaml attributes of a recipient.
// @Summary Save recipient yaml
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Param id path int true "Recipient ID"
// @Param request body SaveYAMLRequest true "YAML payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Recipient not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/recipients/{id}/yaml [put]
func (h *HTTPEndpoint) SaveRecipientYAML(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req SaveYAMLRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.SaveRecipientYAML(r.Context(), usecase.SaveRecipientYAMLInput{ID: id, YAML: req.YAML})
}

// ToggleRecipient flips the active flag of a recipient.
// @Summary Toggle recipient
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "Recipient ID"
// @Success 200 {object} router.successResponse{data=ToggleResponse} "New state"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Recipient not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/recipients/{id}/toggle [post]
func (h *HTTPEndpoint) ToggleRecipient(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	active, err := h.uc.ToggleRecipient(r.Context(), usecase.ToggleRecipientInput{ID: id})
	if err != nil {
		return nil, err
	}

	return ToggleResponse{ID: id, Active: active}, nil
}

// ListLanes returns lanes owned by the current user.
// @Summary List lanes
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=LanesResponse} "Lanes"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lanes [get]
func (h *HTTPEndpoint) ListLanes(r *router.Request) (any, error) {
	items, err := h.uc.ListLanes(r.Context())
	if err != nil {
		return nil, err
	}

	return LanesResponse{Lanes: lo.Map(items, func(item entity.Lane, _ int) LaneResponse {
		return toLaneResponse(item)
	})}, nil
}

// CreateLane creates an empty lane.
// @Summary Create lane
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body CreateLaneRequest true "Lane payload"
// @Success 201 {object} router.successResponse{data=CreatedResponse} "Created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lanes [post]
func (h *HTTPEndpoint) CreateLane(r *router.Request) (any, error) {
	var req CreateLaneRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	id, err := h.uc.CreateLane(r.Context(), usecase.CreateLaneInput{Title: req.Title})
	if err != nil {
		return nil, err
	}

	return CreatedResponse{ID: id}, nil
}

// GetLane returns a lane with its letters ordered by place.
// @Summary Get lane
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "Lane ID"
// @Success 200 {object} router.successResponse{data=LaneResponse} "Lane"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Lane not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lanes/{id} [get]
func (h *HTTPEndpoint) GetLane(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	item, err := h.uc.GetLane(r.Context(), usecase.GetLaneInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toLaneResponse(*item), nil
}

// CreateLetter appends a letter to the end of a lane.
// @Summary Create letter
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param id path int true "Lane ID"
// @Param request body CreateLetterRequest true "Letter payload"
// @Success 200 {object} router.successResponse{data=LetterResponse} "Created letter"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Lane not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/lanes/{id}/letters [post]
func (h *HTTPEndpoint) CreateLetter(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CreateLetterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	item, err := h.uc.CreateLetter(r.Context(), usecase.CreateLetterInput{Lane: id, Title: req.Title})
	if err != nil {
		return nil, err
	}

	return toLetterResponse(*item), nil
}

// GetLetter returns a letter.
// @Summary Get letter
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "Letter ID"
// @Success 200 {object} router.successResponse{data=LetterResponse} "Letter"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Letter not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/letters/{id} [get]
func (h *HTTPEndpoint) GetLetter(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	item, err := h.uc.GetLetter(r.Context(), usecase.GetLetterInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toLetterResponse(*item), nil
}

// SaveLetter replaces the liquid template and yaml of a letter.
// @Summary Save letter
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Param id path int true "Letter ID"
// @Param request body SaveLetterRequest true "Letter content"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Letter not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/letters/{id} [put]
func (h *HTTPEndpoint) SaveLetter(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req SaveLetterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.SaveLetter(r.Context(), usecase.SaveLetterInput{ID: id, Liquid: req.Liquid, YAML: req.YAML})
}

// ToggleLetter flips the active flag of a letter.
// @Summary Toggle letter
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "Letter ID"
// @Success 200 {object} router.successResponse{data=ToggleResponse} "New state"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Letter not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/letters/{id}/toggle [post]
func (h *HTTPEndpoint) ToggleLetter(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	active, err := h.uc.ToggleLetter(r.Context(), usecase.ToggleLetterInput{ID: id})
	if err != nil {
		return nil, err
	}

	return ToggleResponse{ID: id, Active: active}, nil
}

// ListCampaigns returns campaigns of the current user.
// @Summary List campaigns
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=CampaignsResponse} "Campaigns"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/campaigns [get]
func (h *HTTPEndpoint) ListCampaigns(r *router.Request) (any, error) {
	items, err := h.uc.ListCampaigns(r.Context())
	if err != nil {
		return nil, err
	}

	return CampaignsResponse{Campaigns: lo.Map(items, func(item entity.Campaign, _ int) CampaignResponse {
		return toCampaignResponse(item)
	})}, nil
}

// CreateCampaign binds a list to a lane. New campaigns are inactive.
// @Summary Create campaign
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body CreateCampaignRequest true "Campaign payload"
// @Success 201 {object} router.successResponse{data=CreatedResponse} "Created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "List or lane not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/campaigns [post]
func (h *HTTPEndpoint) CreateCampaign(r *router.Request) (any, error) {
	var req CreateCampaignRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	id, err := h.uc.CreateCampaign(r.Context(), usecase.CreateCampaignInput{
		List:  req.List,
		Lane:  req.Lane,
		Title: req.Title,
	})
	if err != nil {
		return nil, err
	}

	return CreatedResponse{ID: id}, nil
}

// GetCampaign returns a campaign.
// @Summary Get campaign
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} router.successResponse{data=CampaignResponse} "Campaign"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Campaign not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/campaigns/{id} [get]
func (h *HTTPEndpoint) GetCampaign(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	item, err := h.uc.GetCampaign(r.Context(), usecase.GetCampaignInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toCampaignResponse(*item), nil
}

// SaveCampaignYAML replaces the campaign yaml.
// @Summary Save campaign yaml
// @Tags Campaign
// @Security CookieAuth
// @Accept json
// @Param id path int true "Campaign ID"
// @Param request body SaveYAMLRequest true "YAML payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Campaign not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/campaigns/{id}/yaml [put]
func (h *HTTPEndpoint) SaveCampaignYAML(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req SaveYAMLRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.SaveCampaignYAML(r.Context(), usecase.SaveCampaignYAMLInput{ID: id, YAML: req.YAML})
}

// ToggleCampaign starts or stops a campaign.
// @Summary Toggle campaign
// @Tags Campaign
// @Security CookieAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} router.successResponse{data=ToggleResponse} "New state"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Campaign not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/campaigns/{id}/toggle [post]
func (h *HTTPEndpoint) ToggleCampaign(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	active, err := h.uc.ToggleCampaign(r.Context(), usecase.ToggleCampaignInput{ID: id})
	if err != nil {
		return nil, err
	}

	return ToggleResponse{ID: id, Active: active}, nil
}

func toListResponse(item entity.List) ListResponse {
	return ListResponse{
		ID:         item.ID,
		Title:      item.Title,
		Recipients: item.Recipients,
		Created:    item.Created,
	}
}

func toRecipientResponse(item entity.Recipient) RecipientResponse {
	return RecipientResponse{
		ID:      item.ID,
		List:    item.List,
		Email:   item.Email,
		First:   item.First,
		Last:    item.Last,
		Source:  item.Source,
		YAML:    item.YAML,
		Active:  item.Active,
		Created: item.Created,
	}
}

func toLaneResponse(item entity.Lane) LaneResponse {
	resp := LaneResponse{ID: item.ID, Title: item.Title, Created: item.Created}
	if len(item.Letters) > 0 {
		resp.Letters = lo.Map(item.Letters, func(l entity.Letter, _ int) LetterResponse {
			return toLetterResponse(l)
		})
	}
	return resp
}

func toLetterResponse(item entity.Letter) LetterResponse {
	return LetterResponse{
		ID:      item.ID,
		Lane:    item.Lane,
		Place:   item.Place,
		Title:   item.Title,
		Liquid:  item.Liquid,
		YAML:    item.YAML,
		Active:  item.Active,
		Created: item.Created,
	}
}

func toCampaignResponse(item entity.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:        item.ID,
		Title:     item.Title(),
		List:      item.List,
		ListTitle: item.ListTitle,
		Lane:      item.Lane,
		LaneTitle: item.LaneTitle,
		YAML:      item.YAML,
		Active:    item.Active,
		Created:   item.Created,
	}
}
