package config

import (
	"io"
	"time"
)

// TimeConfig retrieves integer configuration values as durations.
//
// A missing key or a value that is not an integer yields a zero duration.
type TimeConfig interface {
	// GetSecond reads key as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads key as a number of minutes.
	GetMinute(key string) time.Duration
}

// NumberConfig retrieves numeric configuration values.
//
// A missing key or a value that cannot be converted yields zero.
type NumberConfig interface {
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetFloat64(key string) float64
}

// Config defines the configuration surface used across the service.
type Config interface {
	io.Closer
	TimeConfig
	NumberConfig

	// GetBool reads key as a boolean; missing keys are false.
	GetBool(key string) bool

	// GetString reads key as a string; missing keys are empty.
	GetString(key string) string

	// GetArray reads key as a comma separated list (<element1>,<element2>,...).
	// Elements are trimmed and empty elements are dropped, so a missing key
	// yields an empty slice.
	GetArray(key string) []string
}
