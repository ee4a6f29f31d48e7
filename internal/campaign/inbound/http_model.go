package inbound

import (
	"net/http"
	"time"
)

type CreateListRequest struct {
	Title string `json:"title"`
}

type AddRecipientRequest struct {
	Email string `json:"email"`
	First string `json:"first"`
	Last  string `json:"last"`
}

type SaveYAMLRequest struct {
	YAML string `json:"yaml"`
}

type CreateLaneRequest struct {
	Title string `json:"title"`
}

type CreateLetterRequest struct {
	Title string `json:"title"`
}

type SaveLetterRequest struct {
	Liquid string `json:"liquid"`
	YAML   string `json:"yaml"`
}

type CreateCampaignRequest struct {
	List  int64  `json:"list"`
	Lane  int64  `json:"lane"`
	Title string `json:"title"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

func (CreatedResponse) StatusCode() int { return http.StatusCreated }

type ToggleResponse struct {
	ID     int64 `json:"id"`
	Active bool  `json:"active"`
}

type ListResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Recipients int64     `json:"recipients"`
	Created    time.Time `json:"created"`
}

type ListsResponse struct {
	Lists []ListResponse `json:"lists"`
}

type RecipientResponse struct {
	ID      int64     `json:"id"`
	List    int64     `json:"list"`
	Email   string    `json:"email"`
	First   string    `json:"first"`
	Last    string    `json:"last"`
	Source  string    `json:"source"`
	YAML    string    `json:"yaml"`
	Active  bool      `json:"active"`
	Created time.Time `json:"created"`
}

type RecipientsResponse struct {
	Recipients []RecipientResponse `json:"recipients"`

	page  int32
	size  int32
	total int64
}

func (r RecipientsResponse) Meta() map[string]any {
	return map[string]any{"page": r.page, "size": r.size, "total": r.total}
}

type ImportResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type ExportResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Total     int       `json:"total"`
}

type LaneResponse struct {
	ID      int64            `json:"id"`
	Title   string           `json:"title"`
	Created time.Time        `json:"created"`
	Letters []LetterResponse `json:"letters,omitempty"`
}

type LanesResponse struct {
	Lanes []LaneResponse `json:"lanes"`
}

type LetterResponse struct {
	ID      int64     `json:"id"`
	Lane    int64     `json:"lane"`
	Place   int32     `json:"place"`
	Title   string    `json:"title"`
	Liquid  string    `json:"liquid"`
	YAML    string    `json:"yaml"`
	Active  bool      `json:"active"`
	Created time.Time `json:"created"`
}

type CampaignResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	List      int64     `json:"list"`
	ListTitle string    `json:"list_title"`
	Lane      int64     `json:"lane"`
	LaneTitle string    `json:"lane_title"`
	YAML      string    `json:"yaml"`
	Active    bool      `json:"active"`
	Created   time.Time `json:"created"`
}

type CampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
}
