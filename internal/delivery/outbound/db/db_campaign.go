package db

import (
	"context"

	"github.com/samber/lo"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/sqlc"
)

func (s *DB) ListActiveCampaigns(ctx context.Context) (_ []entity.Campaign, err error) {
	ctx, span := s.startSpan(ctx, "ListActiveCampaigns")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListActiveCampaigns(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	return lo.Map(rows, func(row sqlc.ListActiveCampaignsRow, _ int) entity.Campaign {
		return entity.Campaign{
			ID:     row.ID,
			List:   row.List,
			Lane:   row.Lane,
			Owner:  row.Owner,
			YAML:   row.Yaml,
			Active: true,
		}
	}), nil
}

func (s *DB) GetActiveCampaign(ctx context.Context, id int64) (_ *entity.Campaign, err error) {
	ctx, span := s.startSpan(ctx, "GetActiveCampaign")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetActiveCampaign(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.Campaign{
		ID:     row.ID,
		List:   row.List,
		Lane:   row.Lane,
		Owner:  row.Owner,
		YAML:   row.Yaml,
		Active: true,
	}, nil
}

func (s *DB) GetCampaign(ctx context.Context, id int64, owner string) (_ *entity.Campaign, err error) {
	ctx, span := s.startSpan(ctx, "GetCampaign")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetCampaignByOwner(ctx, sqlc.GetCampaignByOwnerParams{ID: id, Owner: owner})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.Campaign{
		ID:     row.ID,
		List:   row.List,
		Lane:   row.Lane,
		Owner:  owner,
		YAML:   row.Yaml,
		Active: row.Active,
	}, nil
}
