package usecase

import (
	"context"
	"log/slog"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/shared/document"
)

// Retry resends failed deliveries whose retry time has come, and takes over
// queued or claimed deliveries left behind by a worker that stopped midway.
// Each delivery is claimed first so concurrent workers never send it twice.
func (s *Usecase) Retry(ctx context.Context) (*entity.FetchResult, error) {
	ctx, span := s.startSpan(ctx, "Retry")
	defer span.End()

	now := s.clock.Now()
	staleBefore := now.Add(-s.staleAfter())

	items, err := s.repoDB.ListRetryable(ctx, now, staleBefore, s.maxAttempts(), retryBatchSize)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list retryable deliveries", "error", err)
		return nil, goerror.NewServer(err)
	}

	res := &entity.FetchResult{}
	for _, item := range items {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		claimed, err := s.repoDB.ClaimRetry(ctx, item.ID, staleBefore)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo claim delivery retry", "delivery_id", item.ID, "error", err)
			continue
		}
		if !claimed {
			res.Skipped++
			continue
		}

		status, err := s.resend(ctx, item)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resend delivery", "delivery_id", item.ID, "error", err)
			continue
		}

		switch status {
		case entity.StatusSent:
			res.Sent++
		case entity.StatusFailed:
			res.Failed++
		default:
			res.Skipped++
		}
	}

	return res, nil
}

func (s *Usecase) resend(ctx context.Context, item entity.Retryable) (entity.Status, error) {
	// a claimed delivery must leave the retry status even when its documents became invalid
	doc, err := document.ParseCampaign(item.Campaign.YAML)
	if err != nil {
		return s.markFailed(ctx, item.ID, err)
	}
	letterDoc, err := document.ParseLetter(item.Letter.YAML)
	if err != nil {
		return s.markFailed(ctx, item.ID, err)
	}

	slog.InfoContext(ctx, "retrying delivery", "delivery_id", item.ID, "attempts", item.Attempts)
	return s.send(ctx, letterJob{
		DeliveryID:  item.ID,
		Campaign:    item.Campaign,
		CampaignDoc: doc,
		Recipient:   item.Recipient,
		Letter:      item.Letter,
		LetterDoc:   letterDoc,
	})
}
