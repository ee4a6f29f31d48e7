// Package uid generates identifiers: snowflake int64 for rows, UUID strings
// for object keys, OAuth state and correlation ids.
package uid

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
