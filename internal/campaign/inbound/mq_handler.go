package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/blueseamans/mailanes/internal/campaign/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/messaging"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
	"github.com/blueseamans/mailanes/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	if cid := messaging.HeaderValue(headers, keyOfCorrelationID); cid != "" {
		return instrument.SetCorrelationID(ctx, cid)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// RecipientUnsubscribed deactivates the recipient named in the message.
func (h *MQHandler) RecipientUnsubscribed(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("campaign.inbound.mq").Start(ctx, "RecipientUnsubscribed")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: recipient unsubscribed", "msg_body", string(body))

	var payload event.RecipientUnsubscribedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of recipient unsubscribed", "msg_body", string(body), "error", err)
		return nil
	}

	if payload.RecipientID <= 0 {
		slog.WarnContext(ctx, "recipient unsubscribed message without recipient", "msg_body", string(body))
		return nil
	}

	if err := h.uc.DeactivateRecipient(ctx, usecase.DeactivateRecipientInput{ID: payload.RecipientID}); err != nil {
		slog.ErrorContext(ctx, "failed to deactivate recipient", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
