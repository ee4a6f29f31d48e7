package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESGCM_Token(t *testing.T) {
	s, err := NewAESGCM("encryption-material")
	require.NoError(t, err)

	token, err := SealToken(s, []byte("1234567890"), "unsubscribe")
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	plain, err := OpenToken(s, token, "unsubscribe")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", string(plain))

	_, err = OpenToken(s, token, "other")
	assert.ErrorIs(t, err, ErrOpen)
}

func TestAESGCM_WrongKey(t *testing.T) {
	a, err := NewAESGCM("one")
	require.NoError(t, err)
	b, err := NewAESGCM("two")
	require.NoError(t, err)

	sealed, err := a.Seal([]byte("42"), "unsubscribe")
	require.NoError(t, err)

	_, err = b.Open(sealed, "unsubscribe")
	assert.ErrorIs(t, err, ErrOpen)
}

func TestAESGCM_Malformed(t *testing.T) {
	s, err := NewAESGCM("material")
	require.NoError(t, err)

	_, err = s.Open([]byte{0, 1}, "unsubscribe")
	assert.ErrorIs(t, err, ErrTooShort)

	sealed, err := s.Seal([]byte("42"), "unsubscribe")
	require.NoError(t, err)
	sealed[0] = 9
	_, err = s.Open(sealed, "unsubscribe")
	assert.ErrorIs(t, err, ErrVersion)

	_, err = OpenToken(s, "!!!", "unsubscribe")
	assert.ErrorIs(t, err, ErrOpen)

	_, err = s.Seal(nil, "unsubscribe")
	assert.ErrorIs(t, err, ErrEmptyPlaintext)

	_, err = NewAESGCM("")
	assert.ErrorIs(t, err, ErrEmptyKeyMaterial)
}
