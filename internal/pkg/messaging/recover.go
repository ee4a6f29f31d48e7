package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/blueseamans/mailanes/internal/pkg/stacktrace"
)

// responder is embedded by driver messages so a message is answered once.
type responder struct {
	done atomic.Bool
}

func (r *responder) respond() bool { return !r.done.Swap(true) }

func (r *responder) responded() bool { return r.done.Load() }

type answerable interface {
	Message
	responded() bool
}

// dispatch runs handler with panic recovery and acks or nacks the message
// when the handler did not.
func dispatch(ctx context.Context, kind string, handler Handler, msg answerable, co consumeOptions) error {
	err := callHandler(ctx, kind, handler, msg)
	if co.manualAck || msg.responded() {
		return err
	}
	if err != nil {
		if nerr := msg.Nack(ctx); nerr != nil {
			slog.WarnContext(ctx, "failed to nack message", "kind", kind, "topic", msg.Topic(), "error", nerr)
		}
		return err
	}
	return msg.Ack(ctx)
}

func callHandler(ctx context.Context, kind string, handler Handler, msg Message) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}
		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in %s handler: %v", kind, rvr)
	}()

	return handler(ctx, msg)
}
