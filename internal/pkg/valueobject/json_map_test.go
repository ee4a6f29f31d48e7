package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMap_Scan(t *testing.T) {
	var j JSONMap
	require.NoError(t, j.Scan([]byte(`{"error":"smtp: 550"}`)))
	assert.Equal(t, JSONMap{"error": "smtp: 550"}, j)

	require.NoError(t, j.Scan(nil))
	assert.Empty(t, j)

	assert.ErrorIs(t, j.Scan(42), ErrScanValueNotBytes)
}

func TestJSONMap_Value(t *testing.T) {
	v, err := JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)

	base := JSONMap{"a": "1"}
	next := base.With("b", "2")
	assert.NotContains(t, base, "b")
	assert.Equal(t, JSONMap{"a": "1", "b": "2"}, next)
}
