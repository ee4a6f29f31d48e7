package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/blueseamans/mailanes/internal/delivery/usecase.(*Usecase).Fetch(...)
	/src/mailanes/internal/delivery/usecase/fetch.go:42 +0x1a
main.main()
	/src/mailanes/main.go:10 +0x25
`)

	got := InternalPaths(stack)

	assert.Equal(t, []string{"internal/delivery/usecase/fetch.go:42"}, got)
}

func TestInternalPaths_Empty(t *testing.T) {
	assert.Empty(t, InternalPaths(nil))
}
