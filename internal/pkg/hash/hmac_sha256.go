package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var errEmptySecret = errors.New("hash: empty hmac secret")

// HMACSHA256 is a Hash producing hex encoded HMAC-SHA256 digests.
type HMACSHA256 struct {
	secret []byte
}

var _ Hash = (*HMACSHA256)(nil)

func NewHMACSHA256(secret string) (*HMACSHA256, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	return &HMACSHA256{secret: []byte(secret)}, nil
}

func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	mac := hmac.New(sha256.New, s.secret)
	if _, err := mac.Write([]byte(str)); err != nil {
		return nil, err
	}

	sum := mac.Sum(nil)
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out, nil
}

// Verify compares in constant time.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	expected, err := s.Hash(str)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(hashed), expected)
}
