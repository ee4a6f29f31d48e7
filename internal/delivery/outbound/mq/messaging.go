package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"go.opentelemetry.io/otel/codes"

	"github.com/blueseamans/mailanes/internal/delivery/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/messaging"
	"github.com/blueseamans/mailanes/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishRecipientUnsubscribed(ctx context.Context, msg usecase.RecipientUnsubscribedEvent) (err error) {
	ctx, span := m.ins.Tracer("delivery.outbound.mq").Start(ctx, "PublishRecipientUnsubscribed")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(event.RecipientUnsubscribedMessage{
		RecipientID: msg.RecipientID,
		DeliveryID:  msg.DeliveryID,
	})
	if err != nil {
		return err
	}

	return m.client.Publish(ctx, event.RecipientUnsubscribedDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(strconv.FormatInt(msg.RecipientID, 10)),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	})
}
