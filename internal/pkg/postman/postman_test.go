package postman

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage_Alternative(t *testing.T) {
	env := Envelope{
		From:     "Mailanes <news@example.com>",
		To:       "jane@example.org",
		Subject:  "Привет, Jane",
		TextBody: "Hello Jane",
		HTMLBody: "<p>Hello Jane</p>",
		Headers:  map[string]string{"list-unsubscribe": "<https://mailanes.test/unsubscribe?token=abc>"},
	}

	raw, err := buildMessage(env, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Привет, Jane", subject)
	assert.Equal(t, "<https://mailanes.test/unsubscribe?token=abc>", msg.Header.Get("List-Unsubscribe"))
	assert.True(t, strings.HasSuffix(msg.Header.Get("Message-Id"), "@example.com>"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	var types []string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		types = append(types, p.Header.Get("Content-Type"))
	}
	assert.Equal(t, []string{"text/plain; charset=utf-8", "text/html; charset=utf-8"}, types)
}

func TestBuildMessage_HeaderInjection(t *testing.T) {
	_, err := buildMessage(Envelope{
		From:     "a@example.com",
		To:       "b@example.com",
		TextBody: "x",
		Headers:  map[string]string{"X-Evil": "a\r\nBcc: c@example.com"},
	}, time.Now())
	assert.Error(t, err)
}

func TestEnvelope_Validate(t *testing.T) {
	env := Envelope{To: "jane@example.org"}
	require.NoError(t, env.Validate("news@example.com"))
	assert.Equal(t, "news@example.com", env.From)

	assert.ErrorIs(t, (&Envelope{}).Validate("x@example.com"), ErrNoRecipient)
	assert.ErrorIs(t, (&Envelope{To: "jane@example.org"}).Validate(""), ErrNoSender)
	assert.Error(t, (&Envelope{To: "not an address"}).Validate("x@example.com"))
}

func TestFake(t *testing.T) {
	f := NewFake("news@example.com")
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			_ = f.Send(ctx, Envelope{To: "jane@example.org", Subject: "hi"})
		})
	}
	wg.Wait()
	assert.Len(t, f.Sent(), 10)

	boom := errors.New("relay denied")
	f.Fail(boom)
	assert.ErrorIs(t, f.Send(ctx, Envelope{To: "jane@example.org"}), boom)
	assert.Len(t, f.Sent(), 10)

	f.Fail(nil)
	assert.NoError(t, f.Send(ctx, Envelope{To: "jane@example.org"}))
	assert.NoError(t, f.Close())
}

func TestNewSMTP_RequiresHost(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)
}
