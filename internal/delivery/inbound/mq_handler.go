package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/blueseamans/mailanes/internal/delivery/usecase"
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

func (h *MQHandler) CampaignActivated(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("delivery.inbound.mq").Start(ctx, "CampaignActivated")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: campaign activated", "msg_body", string(body))

	var payload event.CampaignActivatedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of campaign activated", "msg_body", string(body), "error", err)
		return nil
	}

	if payload.CampaignID <= 0 {
		slog.WarnContext(ctx, "campaign activated message without campaign", "msg_body", string(body))
		return nil
	}

	if err := h.uc.ConsumeCampaignActivated(ctx, usecase.ConsumeCampaignActivatedInput{CampaignID: payload.CampaignID}); err != nil {
		slog.ErrorContext(ctx, "failed to consume campaign activated", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
