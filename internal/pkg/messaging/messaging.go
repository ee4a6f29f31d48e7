package messaging

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	ErrTopicRequired   = errors.New("messaging: topic is required")
	ErrHandlerRequired = errors.New("messaging: handler is required")
	ErrGroupRequired   = errors.New("messaging: consumer group is required")
	ErrClosed          = errors.New("messaging: client closed")
)

type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, topic string, msg OutgoingMessage) error
}

// Consumer blocks in Consume until ctx is done or the subscription fails.
type Consumer interface {
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

type Handler func(ctx context.Context, msg Message) error

type OutgoingMessage struct {
	Body []byte
	// Key is used for Kafka partitioning.
	Key     []byte
	Headers []Header
}

type Header struct {
	Key   string
	Value []byte
}

// HeaderValue returns the first value for key, matched case-insensitively
// because some brokers canonicalize header names.
func HeaderValue(headers []Header, key string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Key, key) {
			return string(h.Value)
		}
	}
	return ""
}

// Message is a received message.
type Message interface {
	Body() []byte
	Headers() []Header
	Topic() string
	Ack(ctx context.Context) error
	// Nack asks for redelivery when the broker supports it.
	Nack(ctx context.Context) error
}

func validateConsume(ctx context.Context, topic string, handler Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	return nil
}
