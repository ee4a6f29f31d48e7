package postman

import (
	"context"
	"sync"
)

// Fake records envelopes instead of sending them.
type Fake struct {
	mu   sync.Mutex
	sent []Envelope
	err  error
	from string
}

var _ Postman = (*Fake)(nil)

// NewFake uses from when an envelope has no sender.
func NewFake(from string) *Fake {
	return &Fake{from: from}
}

func (f *Fake) Send(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	if err := env.Validate(f.from); err != nil {
		return err
	}
	f.sent = append(f.sent, env)
	return nil
}

// Fail makes every following Send return err. A nil err restores success.
func (f *Fake) Fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// Sent returns a copy of the recorded envelopes.
func (f *Fake) Sent() []Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Envelope(nil), f.sent...)
}

func (f *Fake) Close() error {
	return nil
}
