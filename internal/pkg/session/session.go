package session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blueseamans/mailanes/internal/pkg/clock"
	"github.com/blueseamans/mailanes/internal/pkg/hash"
	"github.com/blueseamans/mailanes/internal/pkg/jwt"
	"github.com/blueseamans/mailanes/internal/pkg/router"
)

var (
	ErrNoSession       = errors.New("session: no login cookie")
	ErrBindingMismatch = errors.New("session: client context changed")
)

type Config struct {
	Cookies Cookies
	JWT     jwt.JWT
	Hash    hash.Hash
	Clock   clock.Clocker
	Version string
	// Bind ties a session to the IP, user agent, version and day it was
	// issued on.
	Bind bool
}

// Manager issues login cookies and authenticates requests carrying them.
type Manager struct {
	cfg Config
}

var _ router.Authenticator = (*Manager)(nil)

func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

func (m *Manager) Cookies() Cookies {
	return m.cfg.Cookies
}

// Issue signs a session for login bound to r and returns the cookie.
func (m *Manager) Issue(r *http.Request, login string) (*http.Cookie, error) {
	binding, err := m.binding(r)
	if err != nil {
		return nil, err
	}

	token, err := m.cfg.JWT.Generate(login, binding)
	if err != nil {
		return nil, err
	}

	return m.cfg.Cookies.New(token), nil
}

// Authenticate implements router.Authenticator.
func (m *Manager) Authenticate(r *http.Request) (jwt.Claims, error) {
	token, ok := m.cfg.Cookies.Read(r)
	if !ok {
		return jwt.Claims{}, ErrNoSession
	}

	claims, err := m.cfg.JWT.Verify(token)
	if err != nil {
		return jwt.Claims{}, err
	}

	if !m.cfg.Bind {
		return claims, nil
	}
	if !m.cfg.Hash.Verify(claims.Binding, m.context(r)) {
		return jwt.Claims{}, ErrBindingMismatch
	}
	return claims, nil
}

func (m *Manager) binding(r *http.Request) (string, error) {
	if !m.cfg.Bind {
		return "", nil
	}
	sum, err := m.cfg.Hash.Hash(m.context(r))
	if err != nil {
		return "", err
	}
	return string(sum), nil
}

// context is "<ip> <user-agent> <version> <yyyy/mm/dd>".
func (m *Manager) context(r *http.Request) string {
	return strings.Join([]string{
		r.RemoteAddr,
		r.UserAgent(),
		m.cfg.Version,
		m.cfg.Clock.Now().UTC().Format("2006/01/02"),
	}, " ")
}
