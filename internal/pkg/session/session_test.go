package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueseamans/mailanes/internal/pkg/clock"
	"github.com/blueseamans/mailanes/internal/pkg/hash"
	"github.com/blueseamans/mailanes/internal/pkg/jwt"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
)

func newManager(t *testing.T, clk *clock.Fixed, bind bool) *Manager {
	t.Helper()

	j, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("s", 64)),
		Issuer: "mailanes",
		TTL:    72 * time.Hour,
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	h, err := hash.NewHMACSHA256("binding-secret")
	require.NoError(t, err)

	return NewManager(Config{
		Cookies: Cookies{Name: "glogin", TTL: 72 * time.Hour},
		JWT:     j,
		Hash:    h,
		Clock:   clk,
		Version: "1.0.0",
		Bind:    bind,
	})
}

func requestFrom(ip, ua string, c *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip
	req.Header.Set("User-Agent", ua)
	if c != nil {
		req.AddCookie(c)
	}
	return req
}

func TestManager_IssueAndAuthenticate(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	m := newManager(t, clk, true)

	cookie, err := m.Issue(requestFrom("198.51.100.7", "firefox", nil), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "glogin", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	claims, err := m.Authenticate(requestFrom("198.51.100.7", "firefox", cookie))
	require.NoError(t, err)
	assert.Equal(t, "octocat", claims.Login)

	_, err = m.Authenticate(requestFrom("198.51.100.8", "firefox", cookie))
	assert.ErrorIs(t, err, ErrBindingMismatch)

	_, err = m.Authenticate(requestFrom("198.51.100.7", "chrome", cookie))
	assert.ErrorIs(t, err, ErrBindingMismatch)

	clk.Advance(24 * time.Hour)
	_, err = m.Authenticate(requestFrom("198.51.100.7", "firefox", cookie))
	assert.ErrorIs(t, err, ErrBindingMismatch)
}

func TestManager_Unbound(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	m := newManager(t, clk, false)

	cookie, err := m.Issue(requestFrom("198.51.100.7", "firefox", nil), "octocat")
	require.NoError(t, err)

	claims, err := m.Authenticate(requestFrom("203.0.113.1", "curl", cookie))
	require.NoError(t, err)
	assert.Equal(t, "octocat", claims.Login)
}

func TestManager_NoCookie(t *testing.T) {
	m := newManager(t, clock.NewFixed(time.Now()), true)

	_, err := m.Authenticate(requestFrom("198.51.100.7", "firefox", nil))
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.Authenticate(requestFrom("198.51.100.7", "firefox", &http.Cookie{Name: "glogin", Value: "junk"}))
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestCookies_Expired(t *testing.T) {
	c := Cookies{}.Expired()
	assert.Equal(t, DefaultCookieName, c.Name)
	assert.Equal(t, -1, c.MaxAge)
}
