// Package hash provides keyed digests used to bind session cookies to the
// client context that created them.
package hash

// Hash produces and verifies digests of strings.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}
