package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueseamans/mailanes/internal/pkg/clock"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

func newSymmetric(t *testing.T, clk *clock.Fixed) *Symmetric {
	t.Helper()
	s, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("k", 64)),
		Issuer:    "mailanes",
		Audiences: []string{"mailanes-web"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      staticID("jti-1"),
	})
	require.NoError(t, err)
	return s
}

func TestSymmetric_RoundTrip(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	s := newSymmetric(t, clk)

	token, err := s.Generate("octocat", "bind")
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "octocat", claims.Login)
	assert.Equal(t, "bind", claims.Binding)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestSymmetric_Expired(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	s := newSymmetric(t, clk)

	token, err := s.Generate("octocat", "")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetric_Tampered(t *testing.T) {
	s := newSymmetric(t, clock.NewFixed(time.Now()))

	token, err := s.Generate("octocat", "")
	require.NoError(t, err)

	_, err = s.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Generate("", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewHS512_ShortKey(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetAuth(ctx))
	assert.Empty(t, Owner(ctx))

	ctx = SetAuth(ctx, Claims{Login: "octocat"})
	assert.Equal(t, "octocat", Owner(ctx))
}
