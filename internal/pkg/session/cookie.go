// Package session reads and writes the login cookie and binds the session
// token inside it to the client context.
package session

import (
	"net/http"
	"strings"
	"time"
)

// DefaultCookieName is the login cookie used when none is configured.
const DefaultCookieName = "glogin"

// Cookies builds the login cookie.
type Cookies struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (c Cookies) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// Read returns the trimmed cookie value when present.
func (c Cookies) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(c.name())
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// New returns a cookie carrying value.
func (c Cookies) New(value string) *http.Cookie {
	return &http.Cookie{
		Name:     c.name(),
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Expired returns a cookie that clears the login.
func (c Cookies) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
