package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/idempotency"
	"github.com/blueseamans/mailanes/internal/pkg/valueobject"
)

// send composes the letter, hands it to the postman and records the outcome.
// It returns the final status, or "" when another worker holds the delivery,
// in which case the row goes back to failed until that worker's lock expires.
func (s *Usecase) send(ctx context.Context, job letterJob) (entity.Status, error) {
	ctx, span := s.startSpan(ctx, "send")
	defer span.End()

	env, err := s.compose(job)
	if err != nil {
		slog.WarnContext(ctx, "failed to compose letter", "delivery_id", job.DeliveryID, "error", err)
		return s.markFailed(ctx, job.DeliveryID, err)
	}

	key := "delivery:" + strconv.FormatInt(job.DeliveryID, 10)
	lock := s.sendLock()
	err = s.idempotency.Exec(ctx, key, func(ctx context.Context) error {
		backoff := retry.WithMaxRetries(s.sendRetries(), retry.NewExponential(s.sendBackoff()))
		return retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := s.repoMail.Send(ctx, env); err != nil {
				slog.WarnContext(ctx, "postman refused letter", "delivery_id", job.DeliveryID, "error", err)
				return retry.RetryableError(err)
			}
			return nil
		})
	},
		idempotency.WithRetryableFailure(),
		idempotency.WithLockDuration(lock),
		idempotency.WithStateTTL(max(s.retryAfter(), s.staleAfter())),
	)

	details := valueobject.JSONMap{"subject": env.Subject, "to": env.To}
	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.InfoContext(ctx, "delivery held by another worker", "delivery_id", job.DeliveryID)
		if err := s.repoDB.ReleaseRetry(ctx, job.DeliveryID, s.clock.Now().Add(lock)); err != nil {
			slog.ErrorContext(ctx, "failed to repo release delivery", "delivery_id", job.DeliveryID, "error", err)
			return "", err
		}
		return "", nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		// the postman took it earlier but the row was never marked
		slog.InfoContext(ctx, "delivery already handed to postman", "delivery_id", job.DeliveryID)
		details = details.With("recovered", true)
	case err != nil:
		return s.markFailed(ctx, job.DeliveryID, err)
	}

	details = details.With("sent_at", s.clock.Now().UTC().Format(time.RFC3339))
	if err := s.repoDB.MarkSent(ctx, job.DeliveryID, details); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark delivery sent", "delivery_id", job.DeliveryID, "error", err)
		return "", err
	}

	slog.InfoContext(ctx, "letter delivered", "delivery_id", job.DeliveryID, "campaign_id", job.Campaign.ID, "letter_id", job.Letter.ID)
	return entity.StatusSent, nil
}

func (s *Usecase) markFailed(ctx context.Context, id int64, cause error) (entity.Status, error) {
	now := s.clock.Now()
	details := valueobject.JSONMap{
		"error":     cause.Error(),
		"failed_at": now.UTC().Format(time.RFC3339),
	}

	if err := s.repoDB.MarkFailed(ctx, id, now.Add(s.retryAfter()), details); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark delivery failed", "delivery_id", id, "error", err)
		return "", err
	}

	slog.WarnContext(ctx, "letter delivery failed", "delivery_id", id, "error", cause)
	return entity.StatusFailed, nil
}
