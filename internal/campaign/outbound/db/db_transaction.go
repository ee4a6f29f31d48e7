package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/sqlc"
	"github.com/jackc/pgx/v5"
)

func (s *DB) ImportRecipients(ctx context.Context, in []entity.Recipient) (created int, err error) {
	ctx, span := s.startSpan(ctx, "ImportRecipients")
	defer func() { s.endSpan(span, err) }()

	if len(in) == 0 {
		return 0, nil
	}

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	wtx := s.query.WithTx(tx)

	for _, r := range in {
		rows, err := wtx.CreateRecipientSkipDuplicate(ctx, sqlc.CreateRecipientSkipDuplicateParams{
			ID:     r.ID,
			List:   r.List,
			Email:  r.Email,
			First:  r.First,
			Last:   r.Last,
			Source: r.Source,
			Yaml:   r.YAML,
			Active: r.Active,
		})
		if err != nil {
			return 0, s.mapError(err)
		}
		created += int(rows)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return created, nil
}
