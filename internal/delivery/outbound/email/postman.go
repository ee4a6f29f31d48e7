package email

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/postman"
)

// Postman traces and counts every envelope handed to the mail transport.
type Postman struct {
	client postman.Postman
	ins    instrument.Instrumentation
	sent   metric.Int64Counter
}

func New(client postman.Postman, ins instrument.Instrumentation) *Postman {
	sent, _ := ins.Meter("delivery.outbound.email").Int64Counter("delivery.letters",
		metric.WithDescription("Letters handed to the mail transport"))
	return &Postman{client: client, ins: ins, sent: sent}
}

func (p *Postman) Send(ctx context.Context, env postman.Envelope) error {
	ctx, span := p.ins.Tracer("delivery.outbound.email").Start(ctx, "Send")
	defer span.End()

	err := p.client.Send(ctx, env)

	outcome := "sent"
	if err != nil {
		outcome = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if p.sent != nil {
		p.sent.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}

	return err
}
