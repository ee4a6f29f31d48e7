// Package secret seals small payloads with AES-256-GCM so they can travel in
// URLs, such as unsubscribe links.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Sealed layout: uint16 version | 12 byte nonce | ciphertext+tag.
const (
	version   uint16 = 1
	nonceSize        = 12
	keyLen           = 32
)

var (
	ErrEmptyKeyMaterial = errors.New("secret: empty key material")
	ErrEmptyPlaintext   = errors.New("secret: plaintext is empty")
	ErrTooShort         = errors.New("secret: ciphertext too short")
	ErrVersion          = errors.New("secret: unsupported ciphertext version")
	ErrOpen             = errors.New("secret: open failed")
)

// Sealer encrypts payloads bound to a purpose.
type Sealer interface {
	Seal(plaintext []byte, purpose string) ([]byte, error)
	Open(ciphertext []byte, purpose string) ([]byte, error)
}

// AESGCM derives its key from the configured material with HKDF-SHA256.
type AESGCM struct {
	aead cipher.AEAD
}

var _ Sealer = (*AESGCM)(nil)

func NewAESGCM(material string) (*AESGCM, error) {
	if material == "" {
		return nil, ErrEmptyKeyMaterial
	}

	key := make([]byte, keyLen)
	kdf := hkdf.New(sha256.New, []byte(material), nil, []byte("mailanes/secret/v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("secret: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("secret: aes init: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secret: gcm init: %w", err)
	}

	return &AESGCM{aead: aead}, nil
}

func (a *AESGCM) Seal(plaintext []byte, purpose string) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, ErrEmptyPlaintext
	}

	out := make([]byte, 2+nonceSize, 2+nonceSize+len(plaintext)+a.aead.Overhead())
	binary.BigEndian.PutUint16(out, version)
	if _, err := io.ReadFull(rand.Reader, out[2:]); err != nil {
		return nil, fmt.Errorf("secret: nonce: %w", err)
	}

	return a.aead.Seal(out, out[2:2+nonceSize], plaintext, aad(purpose)), nil
}

func (a *AESGCM) Open(ciphertext []byte, purpose string) ([]byte, error) {
	if len(ciphertext) < 2+nonceSize+a.aead.Overhead() {
		return nil, ErrTooShort
	}
	if binary.BigEndian.Uint16(ciphertext) != version {
		return nil, ErrVersion
	}

	plain, err := a.aead.Open(nil, ciphertext[2:2+nonceSize], ciphertext[2+nonceSize:], aad(purpose))
	if err != nil {
		// wrong key, wrong purpose and tampering are indistinguishable
		return nil, ErrOpen
	}
	return plain, nil
}

func aad(purpose string) []byte {
	sum := sha256.Sum256([]byte("purpose=" + purpose + "\n"))
	return sum[:]
}

// SealToken seals plaintext and encodes it as unpadded base64url.
func SealToken(s Sealer, plaintext []byte, purpose string) (string, error) {
	sealed, err := s.Seal(plaintext, purpose)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// OpenToken reverses SealToken.
func OpenToken(s Sealer, token, purpose string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrOpen
	}
	return s.Open(raw, purpose)
}
