// Package postman hands rendered letters to a mail transport.
//
// The delivery pipeline only sees the Postman interface. SMTP talks to a
// real server; Fake keeps envelopes in memory for tests and local runs.
package postman

import (
	"context"
	"errors"
	"io"
	"net/mail"
)

var (
	ErrNoRecipient = errors.New("postman: recipient is required")
	ErrNoSender    = errors.New("postman: sender is required")
)

// Envelope is one message to one recipient.
type Envelope struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
	// Headers are extra header fields such as List-Unsubscribe.
	Headers map[string]string
}

// Validate checks addresses and fills From with fallback when empty.
func (e *Envelope) Validate(fallback string) error {
	if e.To == "" {
		return ErrNoRecipient
	}
	if _, err := mail.ParseAddress(e.To); err != nil {
		return err
	}

	if e.From == "" {
		e.From = fallback
	}
	if e.From == "" {
		return ErrNoSender
	}
	_, err := mail.ParseAddress(e.From)
	return err
}

type Postman interface {
	io.Closer
	Send(ctx context.Context, env Envelope) error
}
