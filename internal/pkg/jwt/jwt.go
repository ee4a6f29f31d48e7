package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")
	ErrSigningKeyTooShort   = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")
	ErrTokenExpired         = errors.New("JWT token has expired")
	ErrInvalidToken         = errors.New("invalid token")
)

// JWT issues and checks session tokens.
type JWT interface {
	// Generate signs a token for the GitHub login. binding ties the token
	// to a client context and may be empty.
	Generate(login, binding string) (string, error)
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	UUID      generator
}

// Claims are the registered claims plus the session payload. Subject
// duplicates Login.
type Claims struct {
	jwt.RegisteredClaims
	Login   string `json:"login"`
	Binding string `json:"bnd,omitempty"`
}

type claimsKey struct{}

// GetAuth returns the claims stored by SetAuth, or nil.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(claimsKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, clm)
}

// Owner returns the authenticated login or "".
func Owner(ctx context.Context) string {
	if clm := GetAuth(ctx); clm != nil {
		return clm.Login
	}
	return ""
}
