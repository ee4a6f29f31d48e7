package uid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflake(t *testing.T) {
	s, err := NewSnowflake(1)
	require.NoError(t, err)

	seen := make(map[int64]struct{})
	for range 1000 {
		id := s.Generate()
		require.Positive(t, id)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestSnowflake_InvalidNode(t *testing.T) {
	_, err := NewSnowflake(4096)
	assert.Error(t, err)
}

func TestUUID(t *testing.T) {
	id, err := uuid.Parse(NewUUID().Generate())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestRandomUUID(t *testing.T) {
	gen := NewRandomUUID()
	a, err := uuid.Parse(gen.Generate())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), a.Version())
	assert.NotEqual(t, a.String(), gen.Generate())
}
