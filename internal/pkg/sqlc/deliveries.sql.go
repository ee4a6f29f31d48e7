package sqlc

import (
	"context"

	"github.com/blueseamans/mailanes/internal/pkg/valueobject"
	"github.com/jackc/pgx/v5/pgtype"
)

const claimDeliveryRetry = `-- name: ClaimDeliveryRetry :execrows
UPDATE deliveries SET status = 'retry', updated = NOW()
WHERE id = $1
    AND (status = 'failed' OR (status IN ('queued', 'retry') AND updated < $2))
`

type ClaimDeliveryRetryParams struct {
	ID          int64
	StaleBefore pgtype.Timestamptz
}

func (q *Queries) ClaimDeliveryRetry(ctx context.Context, arg ClaimDeliveryRetryParams) (int64, error) {
	result, err := q.db.Exec(ctx, claimDeliveryRetry, arg.ID, arg.StaleBefore)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countDeliveriesByStatus = `-- name: CountDeliveriesByStatus :many
SELECT status, COUNT(*)::BIGINT AS total
FROM deliveries
WHERE campaign = $1
GROUP BY status
ORDER BY status
`

type CountDeliveriesByStatusRow struct {
	Status string
	Total  int64
}

func (q *Queries) CountDeliveriesByStatus(ctx context.Context, campaign int64) ([]CountDeliveriesByStatusRow, error) {
	rows, err := q.db.Query(ctx, countDeliveriesByStatus, campaign)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountDeliveriesByStatusRow
	for rows.Next() {
		var i CountDeliveriesByStatusRow
		if err := rows.Scan(&i.Status, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countDeliveriesSince = `-- name: CountDeliveriesSince :one
SELECT COUNT(*)::BIGINT FROM deliveries WHERE campaign = $1 AND created > $2
`

type CountDeliveriesSinceParams struct {
	Campaign int64
	Since    pgtype.Timestamptz
}

func (q *Queries) CountDeliveriesSince(ctx context.Context, arg CountDeliveriesSinceParams) (int64, error) {
	row := q.db.QueryRow(ctx, countDeliveriesSince, arg.Campaign, arg.Since)
	var column_1 int64
	err := row.Scan(&column_1)
	return column_1, err
}

const createDelivery = `-- name: CreateDelivery :execrows
INSERT INTO deliveries (id, campaign, recipient, letter, status)
VALUES ($1, $2, $3, $4, 'queued')
ON CONFLICT (recipient, letter) DO NOTHING
`

type CreateDeliveryParams struct {
	ID        int64
	Campaign  int64
	Recipient int64
	Letter    int64
}

func (q *Queries) CreateDelivery(ctx context.Context, arg CreateDeliveryParams) (int64, error) {
	result, err := q.db.Exec(ctx, createDelivery,
		arg.ID,
		arg.Campaign,
		arg.Recipient,
		arg.Letter,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listDeliveriesByCampaign = `-- name: ListDeliveriesByCampaign :many
SELECT d.id, r.email, t.title AS letter_title, d.status, d.attempts, d.created
FROM deliveries d
JOIN recipients r ON r.id = d.recipient
JOIN letters t ON t.id = d.letter
WHERE d.campaign = $1
ORDER BY d.created DESC, d.id DESC
LIMIT $2
`

type ListDeliveriesByCampaignParams struct {
	Campaign int64
	Lim      int32
}

type ListDeliveriesByCampaignRow struct {
	ID          int64
	Email       string
	LetterTitle string
	Status      string
	Attempts    int32
	Created     pgtype.Timestamptz
}

func (q *Queries) ListDeliveriesByCampaign(ctx context.Context, arg ListDeliveriesByCampaignParams) ([]ListDeliveriesByCampaignRow, error) {
	rows, err := q.db.Query(ctx, listDeliveriesByCampaign, arg.Campaign, arg.Lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListDeliveriesByCampaignRow
	for rows.Next() {
		var i ListDeliveriesByCampaignRow
		if err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.LetterTitle,
			&i.Status,
			&i.Attempts,
			&i.Created,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listDeliveryCandidates = `-- name: ListDeliveryCandidates :many
SELECT r.id AS recipient_id, r.email, r.first, r.last, r.yaml AS recipient_yaml,
    t.id AS letter_id, t.title AS letter_title, t.liquid, t.yaml AS letter_yaml,
    COALESCE(
        (SELECT MAX(d.created) FROM deliveries d WHERE d.campaign = $1 AND d.recipient = r.id),
        r.created
    )::TIMESTAMPTZ AS since
FROM recipients r
JOIN LATERAL (
    SELECT l.id, l.title, l.liquid, l.yaml
    FROM letters l
    WHERE l.lane = $2 AND l.active
        AND NOT EXISTS (SELECT 1 FROM deliveries x WHERE x.recipient = r.id AND x.letter = l.id)
    ORDER BY l.place, l.id
    LIMIT 1
) t ON TRUE
WHERE r.list = $3 AND r.active AND r.id > $4
ORDER BY r.id
LIMIT $5
`

type ListDeliveryCandidatesParams struct {
	Campaign int64
	Lane     int64
	List     int64
	After    int64
	Lim      int32
}

type ListDeliveryCandidatesRow struct {
	RecipientID   int64
	Email         string
	First         string
	Last          string
	RecipientYaml string
	LetterID      int64
	LetterTitle   string
	Liquid        string
	LetterYaml    string
	Since         pgtype.Timestamptz
}

func (q *Queries) ListDeliveryCandidates(ctx context.Context, arg ListDeliveryCandidatesParams) ([]ListDeliveryCandidatesRow, error) {
	rows, err := q.db.Query(ctx, listDeliveryCandidates,
		arg.Campaign,
		arg.Lane,
		arg.List,
		arg.After,
		arg.Lim,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListDeliveryCandidatesRow
	for rows.Next() {
		var i ListDeliveryCandidatesRow
		if err := rows.Scan(
			&i.RecipientID,
			&i.Email,
			&i.First,
			&i.Last,
			&i.RecipientYaml,
			&i.LetterID,
			&i.LetterTitle,
			&i.Liquid,
			&i.LetterYaml,
			&i.Since,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRetryableDeliveries = `-- name: ListRetryableDeliveries :many
SELECT d.id, d.campaign, d.attempts,
    r.id AS recipient_id, r.email, r.first, r.last, r.yaml AS recipient_yaml,
    t.id AS letter_id, t.title AS letter_title, t.liquid, t.yaml AS letter_yaml,
    c.yaml AS campaign_yaml
FROM deliveries d
JOIN recipients r ON r.id = d.recipient
JOIN letters t ON t.id = d.letter
JOIN campaigns c ON c.id = d.campaign
WHERE ((d.status = 'failed' AND d.next_retry_at <= $1)
        OR (d.status IN ('queued', 'retry') AND d.updated < $2))
    AND d.attempts < $3
    AND r.active AND c.active
ORDER BY COALESCE(d.next_retry_at, d.updated), d.id
LIMIT $4
`

type ListRetryableDeliveriesParams struct {
	Now         pgtype.Timestamptz
	StaleBefore pgtype.Timestamptz
	MaxAttempts int32
	Lim         int32
}

type ListRetryableDeliveriesRow struct {
	ID            int64
	Campaign      int64
	Attempts      int32
	RecipientID   int64
	Email         string
	First         string
	Last          string
	RecipientYaml string
	LetterID      int64
	LetterTitle   string
	Liquid        string
	LetterYaml    string
	CampaignYaml  string
}

func (q *Queries) ListRetryableDeliveries(ctx context.Context, arg ListRetryableDeliveriesParams) ([]ListRetryableDeliveriesRow, error) {
	rows, err := q.db.Query(ctx, listRetryableDeliveries,
		arg.Now,
		arg.StaleBefore,
		arg.MaxAttempts,
		arg.Lim,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRetryableDeliveriesRow
	for rows.Next() {
		var i ListRetryableDeliveriesRow
		if err := rows.Scan(
			&i.ID,
			&i.Campaign,
			&i.Attempts,
			&i.RecipientID,
			&i.Email,
			&i.First,
			&i.Last,
			&i.RecipientYaml,
			&i.LetterID,
			&i.LetterTitle,
			&i.Liquid,
			&i.LetterYaml,
			&i.CampaignYaml,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markDeliveryFailed = `-- name: MarkDeliveryFailed :exec
UPDATE deliveries
SET status = 'failed', attempts = attempts + 1, next_retry_at = $1, details = $2, updated = NOW()
WHERE id = $3
`

type MarkDeliveryFailedParams struct {
	NextRetryAt pgtype.Timestamptz
	Details     valueobject.JSONMap
	ID          int64
}

func (q *Queries) MarkDeliveryFailed(ctx context.Context, arg MarkDeliveryFailedParams) error {
	_, err := q.db.Exec(ctx, markDeliveryFailed, arg.NextRetryAt, arg.Details, arg.ID)
	return err
}

const markDeliverySent = `-- name: MarkDeliverySent :exec
UPDATE deliveries
SET status = 'sent', attempts = attempts + 1, next_retry_at = NULL, details = $1, updated = NOW()
WHERE id = $2
`

type MarkDeliverySentParams struct {
	Details valueobject.JSONMap
	ID      int64
}

func (q *Queries) MarkDeliverySent(ctx context.Context, arg MarkDeliverySentParams) error {
	_, err := q.db.Exec(ctx, markDeliverySent, arg.Details, arg.ID)
	return err
}

const releaseDeliveryRetry = `-- name: ReleaseDeliveryRetry :exec
UPDATE deliveries SET status = 'failed', next_retry_at = $1, updated = NOW()
WHERE id = $2 AND status IN ('queued', 'retry')
`

type ReleaseDeliveryRetryParams struct {
	NextRetryAt pgtype.Timestamptz
	ID          int64
}

func (q *Queries) ReleaseDeliveryRetry(ctx context.Context, arg ReleaseDeliveryRetryParams) error {
	_, err := q.db.Exec(ctx, releaseDeliveryRetry, arg.NextRetryAt, arg.ID)
	return err
}
