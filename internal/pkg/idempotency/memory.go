package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/blueseamans/mailanes/internal/pkg/clock"
)

// Memory is a process local Idempotency. It only deduplicates within one
// process.
type Memory struct {
	mu      sync.Mutex
	clock   clock.Clocker
	entries map[string]memoryEntry
}

type memoryEntry struct {
	state   State
	expires time.Time
}

func NewMemory(clk clock.Clocker) *Memory {
	if clk == nil {
		clk = clock.New()
	}
	return &Memory{clock: clk, entries: make(map[string]memoryEntry)}
}

func (m *Memory) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	return run(ctx, m, key, fn, opts)
}

func (m *Memory) acquire(_ context.Context, key string, lock time.Duration) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if e, ok := m.entries[key]; ok && now.Before(e.expires) {
		return e.state, nil
	}

	m.entries[key] = memoryEntry{state: StateInProgress, expires: now.Add(lock)}
	return StateNone, nil
}

func (m *Memory) set(_ context.Context, key string, state State, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{state: state, expires: m.clock.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) release(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
