// Package idempotency guards side effects so that a keyed operation runs at
// most once across workers.
package idempotency

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

type State string

const (
	StateNone       State = "none"        // operation can proceed
	StateInProgress State = "in_progress" // another worker holds the lock
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

func (s State) String() string {
	return string(s)
}

func parseState(v string) (State, error) {
	switch State(v) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(v), nil
	default:
		return "", ErrInvalidState
	}
}

// Idempotency is implemented by Redis and Memory.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Minute
)

type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
	// forgetFailure clears the key when fn fails so a later Exec can retry.
	forgetFailure bool
}

func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// WithRetryableFailure releases the key when fn fails instead of recording
// StateFailed.
func WithRetryableFailure() Option {
	return func(o *execOptions) { o.forgetFailure = true }
}

func buildOptions(opts []Option) execOptions {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}
	return o
}

// store is the storage contract shared by the implementations.
type store interface {
	acquire(ctx context.Context, key string, lock time.Duration) (State, error)
	set(ctx context.Context, key string, state State, ttl time.Duration) error
	release(ctx context.Context, key string) error
}

func run(ctx context.Context, s store, key string, fn func(context.Context) error, opts []Option) error {
	o := buildOptions(opts)

	state, err := s.acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		var markErr error
		if o.forgetFailure {
			markErr = s.release(ctx, key)
		} else {
			markErr = s.set(ctx, key, StateFailed, o.stateTTL)
		}
		return errors.Join(err, markErr)
	}

	return s.set(ctx, key, StateCompleted, o.stateTTL)
}
