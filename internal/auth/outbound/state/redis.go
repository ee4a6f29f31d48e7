package state

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/blueseamans/mailanes/internal/pkg/instrument"
)

// Redis keeps OAuth states under "auth:state:<state>".
type Redis struct {
	client redis.UniversalClient
	prefix string
	ins    instrument.Instrumentation
}

func NewRedis(client redis.UniversalClient, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, prefix: "auth:state:", ins: ins}
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("auth.outbound.state").Start(ctx, name)
}

func (r *Redis) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Redis) Save(ctx context.Context, state string, ttl time.Duration) (err error) {
	ctx, span := r.startSpan(ctx, "Save")
	defer func() { r.endSpan(span, err) }()

	return r.client.Set(ctx, r.prefix+state, "1", ttl).Err()
}

func (r *Redis) Consume(ctx context.Context, state string) (_ bool, err error) {
	ctx, span := r.startSpan(ctx, "Consume")
	defer func() { r.endSpan(span, err) }()

	err = r.client.GetDel(ctx, r.prefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
