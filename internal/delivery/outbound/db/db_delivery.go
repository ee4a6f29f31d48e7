package db

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/sqlc"
	"github.com/blueseamans/mailanes/internal/pkg/valueobject"
)

func (s *DB) CountDeliveriesSince(ctx context.Context, campaign int64, since time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountDeliveriesSince")
	defer func() { s.endSpan(span, err) }()

	total, err := s.query.CountDeliveriesSince(ctx, sqlc.CountDeliveriesSinceParams{
		Campaign: campaign,
		Since:    timestamptz(since),
	})
	if err != nil {
		return 0, s.mapError(err)
	}

	return total, nil
}

func (s *DB) ListCandidates(ctx context.Context, c entity.Campaign, after int64, limit int32) (_ []entity.Candidate, err error) {
	ctx, span := s.startSpan(ctx, "ListCandidates")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListDeliveryCandidates(ctx, sqlc.ListDeliveryCandidatesParams{
		Campaign: c.ID,
		Lane:     c.Lane,
		List:     c.List,
		After:    after,
		Lim:      limit,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return lo.Map(rows, func(row sqlc.ListDeliveryCandidatesRow, _ int) entity.Candidate {
		return entity.Candidate{
			Recipient: entity.Recipient{
				ID:    row.RecipientID,
				Email: row.Email,
				First: row.First,
				Last:  row.Last,
				YAML:  row.RecipientYaml,
			},
			Letter: entity.Letter{
				ID:     row.LetterID,
				Title:  row.LetterTitle,
				Liquid: row.Liquid,
				YAML:   row.LetterYaml,
			},
			Since: row.Since.Time,
		}
	}), nil
}

func (s *DB) CreateDelivery(ctx context.Context, id, campaign, recipient, letter int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "CreateDelivery")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.CreateDelivery(ctx, sqlc.CreateDeliveryParams{
		ID:        id,
		Campaign:  campaign,
		Recipient: recipient,
		Letter:    letter,
	})
	if err != nil {
		return false, s.mapError(err)
	}

	return rows > 0, nil
}

func (s *DB) MarkSent(ctx context.Context, id int64, details valueobject.JSONMap) (err error) {
	ctx, span := s.startSpan(ctx, "MarkSent")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(s.query.MarkDeliverySent(ctx, sqlc.MarkDeliverySentParams{Details: details, ID: id}))
}

func (s *DB) MarkFailed(ctx context.Context, id int64, nextRetryAt time.Time, details valueobject.JSONMap) (err error) {
	ctx, span := s.startSpan(ctx, "MarkFailed")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(s.query.MarkDeliveryFailed(ctx, sqlc.MarkDeliveryFailedParams{
		NextRetryAt: timestamptz(nextRetryAt),
		Details:     details,
		ID:          id,
	}))
}

func (s *DB) ListRetryable(ctx context.Context, now, staleBefore time.Time, maxAttempts, limit int32) (_ []entity.Retryable, err error) {
	ctx, span := s.startSpan(ctx, "ListRetryable")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListRetryableDeliveries(ctx, sqlc.ListRetryableDeliveriesParams{
		Now:         timestamptz(now),
		StaleBefore: timestamptz(staleBefore),
		MaxAttempts: maxAttempts,
		Lim:         limit,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return lo.Map(rows, func(row sqlc.ListRetryableDeliveriesRow, _ int) entity.Retryable {
		return entity.Retryable{
			ID:       row.ID,
			Campaign: entity.Campaign{ID: row.Campaign, YAML: row.CampaignYaml, Active: true},
			Attempts: row.Attempts,
			Recipient: entity.Recipient{
				ID:    row.RecipientID,
				Email: row.Email,
				First: row.First,
				Last:  row.Last,
				YAML:  row.RecipientYaml,
			},
			Letter: entity.Letter{
				ID:     row.LetterID,
				Title:  row.LetterTitle,
				Liquid: row.Liquid,
				YAML:   row.LetterYaml,
			},
		}
	}), nil
}

func (s *DB) ClaimRetry(ctx context.Context, id int64, staleBefore time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ClaimRetry")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ClaimDeliveryRetry(ctx, sqlc.ClaimDeliveryRetryParams{
		ID:          id,
		StaleBefore: timestamptz(staleBefore),
	})
	if err != nil {
		return false, s.mapError(err)
	}

	return rows > 0, nil
}

func (s *DB) ReleaseRetry(ctx context.Context, id int64, nextRetryAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "ReleaseRetry")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(s.query.ReleaseDeliveryRetry(ctx, sqlc.ReleaseDeliveryRetryParams{
		NextRetryAt: timestamptz(nextRetryAt),
		ID:          id,
	}))
}

func (s *DB) ListDeliveries(ctx context.Context, campaign int64, limit int32) (_ []entity.Delivery, err error) {
	ctx, span := s.startSpan(ctx, "ListDeliveries")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListDeliveriesByCampaign(ctx, sqlc.ListDeliveriesByCampaignParams{Campaign: campaign, Lim: limit})
	if err != nil {
		return nil, s.mapError(err)
	}

	return lo.Map(rows, func(row sqlc.ListDeliveriesByCampaignRow, _ int) entity.Delivery {
		return entity.Delivery{
			ID:          row.ID,
			Email:       row.Email,
			LetterTitle: row.LetterTitle,
			Status:      entity.Status(row.Status),
			Attempts:    row.Attempts,
			Created:     row.Created.Time,
		}
	}), nil
}

func (s *DB) CountByStatus(ctx context.Context, campaign int64) (_ map[entity.Status]int64, err error) {
	ctx, span := s.startSpan(ctx, "CountByStatus")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.CountDeliveriesByStatus(ctx, campaign)
	if err != nil {
		return nil, s.mapError(err)
	}

	return lo.SliceToMap(rows, func(row sqlc.CountDeliveriesByStatusRow) (entity.Status, int64) {
		return entity.Status(row.Status), row.Total
	}), nil
}
