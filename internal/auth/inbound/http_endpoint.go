package inbound

import (
	"net/http"

	"github.com/blueseamans/mailanes/internal/auth/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/jwt"
	"github.com/blueseamans/mailanes/internal/pkg/router"
)

const robots = "User-agent: *\nDisallow: /"

type HTTPEndpoint struct {
	uc      uc
	session sessionIssuer
}

// Index is the landing route. Anonymous visitors are sent to /hello.
// @Summary Index
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=IndexResponse} "Logged in user"
// @Success 303 {string} string "Redirect to /hello"
// @Router / [get]
func (h *HTTPEndpoint) Index(r *router.Request) (any, error) {
	login := jwt.Owner(r.Context())
	if login == "" {
		return router.Redirect{URL: "/hello", Code: http.StatusSeeOther}, nil
	}

	return IndexResponse{
		Login: login,
		Links: map[string]string{
			"lists":     "/api/v1/lists",
			"lanes":     "/api/v1/lanes",
			"campaigns": "/api/v1/campaigns",
			"logout":    "/logout",
		},
	}, nil
}

// Hello describes how to log in.
// @Summary Hello
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=HelloResponse} "Login link"
// @Router /hello [get]
func (h *HTTPEndpoint) Hello(r *router.Request) (any, error) {
	out := h.uc.Hello(r.Context())
	return HelloResponse{LoginURL: out.LoginURL, Version: out.Version}, nil
}

// Login redirects to GitHub.
// @Summary Login with GitHub
// @Tags Auth
// @Success 302 {string} string "Redirect to GitHub"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /login [get]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	url, err := h.uc.Login(r.Context())
	if err != nil {
		return nil, err
	}

	return router.Redirect{URL: url, Code: http.StatusFound}, nil
}

// Callback finishes the GitHub login and sets the session cookie.
// @Summary GitHub callback
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 303 {string} string "Redirect to /"
// @Failure 401 {object} router.errorResponse "Login expired or rejected"
// @Failure 422 {object} router.errorResponse "Missing state or code"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /github-callback [get]
func (h *HTTPEndpoint) Callback(r *router.Request) (any, error) {
	user, err := h.uc.Callback(r.Context(), usecase.CallbackInput{
		State: r.GetQuery("state"),
		Code:  r.GetQuery("code"),
	})
	if err != nil {
		return nil, err
	}

	cookie, err := h.session.Issue(r.Request, user.Login)
	if err != nil {
		return nil, err
	}

	return router.Redirect{URL: "/", Code: http.StatusSeeOther, Cookies: []*http.Cookie{cookie}}, nil
}

// Logout clears the session cookie.
// @Summary Logout
// @Tags Auth
// @Success 303 {string} string "Redirect to /"
// @Router /logout [get]
func (h *HTTPEndpoint) Logout(*router.Request) (any, error) {
	return router.Redirect{
		URL:     "/",
		Code:    http.StatusSeeOther,
		Cookies: []*http.Cookie{h.session.Cookies().Expired()},
	}, nil
}

// Me returns the logged in user.
// @Summary Current user
// @Tags Auth
// @Security CookieAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=MeResponse} "Current user"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/v1/auth/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	return MeResponse{Login: jwt.Owner(r.Context())}, nil
}

func (h *HTTPEndpoint) Robots(*router.Request) (any, error) {
	return router.Text{Body: robots}, nil
}

func (h *HTTPEndpoint) Version(*router.Request) (any, error) {
	return router.Text{Body: h.uc.Version()}, nil
}
