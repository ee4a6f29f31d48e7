package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/campaign/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/jwt"
	"github.com/blueseamans/mailanes/internal/pkg/router"
)

// stubUC panics on any method a test did not override.
type stubUC struct {
	uc

	createList     func(in usecase.CreateListInput) (int64, error)
	listRecipients func(in usecase.ListRecipientsInput) (*usecase.ListRecipientsOutput, error)
	importFile     func(in usecase.ImportRecipientsInput) (*entity.ImportResult, error)
	getCampaign    func(in usecase.GetCampaignInput) (*entity.Campaign, error)
}

func (s stubUC) CreateList(_ context.Context, in usecase.CreateListInput) (int64, error) {
	return s.createList(in)
}

func (s stubUC) ListRecipients(_ context.Context, in usecase.ListRecipientsInput) (*usecase.ListRecipientsOutput, error) {
	return s.listRecipients(in)
}

func (s stubUC) ImportRecipients(_ context.Context, in usecase.ImportRecipientsInput) (*entity.ImportResult, error) {
	return s.importFile(in)
}

func (s stubUC) GetCampaign(_ context.Context, in usecase.GetCampaignInput) (*entity.Campaign, error) {
	return s.getCampaign(in)
}

type sessionAuth struct{}

func (sessionAuth) Authenticate(*http.Request) (jwt.Claims, error) {
	return jwt.Claims{Login: "yegor256"}, nil
}

type staticID struct{}

func (staticID) Generate() string { return "cid" }

func newServer(t *testing.T, s stubUC) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  campaign:\n    import_max_size_bytes: 64\n"))
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: staticID{}, Authenticator: sessionAuth{}})
	RegisterHTTPEndpoint(r, cfg, s)
	return r
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func TestHTTP_CreateList(t *testing.T) {
	var got usecase.CreateListInput
	srv := newServer(t, stubUC{createList: func(in usecase.CreateListInput) (int64, error) {
		got = in
		return 42, nil
	}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/lists", strings.NewReader(`{"title":"Friends"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Friends", got.Title)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.JSONEq(t, `{"id":42}`, string(env.Data))
}

func TestHTTP_CreateList_UnknownField(t *testing.T) {
	srv := newServer(t, stubUC{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/lists", strings.NewReader(`{"name":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_ListRecipients_Meta(t *testing.T) {
	srv := newServer(t, stubUC{listRecipients: func(in usecase.ListRecipientsInput) (*usecase.ListRecipientsOutput, error) {
		assert.Equal(t, int64(7), in.List)
		assert.Equal(t, int32(2), in.Page)
		return &usecase.ListRecipientsOutput{
			Recipients: []entity.Recipient{{ID: 1, List: 7, Email: "jeff@example.com", Active: true}},
			Page:       2,
			Size:       25,
			Total:      26,
		}, nil
	}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/lists/7/recipients?page=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, float64(26), env.Meta["total"])
	assert.Contains(t, string(env.Data), "jeff@example.com")
}

func TestHTTP_BadParam(t *testing.T) {
	srv := newServer(t, stubUC{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_GetCampaign_NotFound(t *testing.T) {
	srv := newServer(t, stubUC{getCampaign: func(usecase.GetCampaignInput) (*entity.Campaign, error) {
		return nil, goerror.NewNotFound("campaign not found")
	}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"campaign not found"}`, rec.Body.String())
}

func TestHTTP_GetCampaign_Title(t *testing.T) {
	srv := newServer(t, stubUC{getCampaign: func(in usecase.GetCampaignInput) (*entity.Campaign, error) {
		return &entity.Campaign{ID: in.ID, YAML: "speed: 10"}, nil
	}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/9", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	var c CampaignResponse
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, entity.UnknownTitle, c.Title)
}

func multipartBody(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", "list.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestHTTP_ImportRecipients(t *testing.T) {
	srv := newServer(t, stubUC{importFile: func(in usecase.ImportRecipientsInput) (*entity.ImportResult, error) {
		assert.Equal(t, "jeff@example.com\n", string(in.File))
		return &entity.ImportResult{Created: 1}, nil
	}})

	body, ct := multipartBody(t, "jeff@example.com\n")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists/3/import", body)
	req.Header.Set("Content-Type", ct)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"created":1`)
}

func TestHTTP_ImportRecipients_TooLarge(t *testing.T) {
	srv := newServer(t, stubUC{})

	body, ct := multipartBody(t, strings.Repeat("a", 100))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists/3/import", body)
	req.Header.Set("Content-Type", ct)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
