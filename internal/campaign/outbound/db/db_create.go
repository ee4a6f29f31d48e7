package db

import (
	"context"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/sqlc"
)

func (s *DB) CreateList(ctx context.Context, in entity.List) (err error) {
	ctx, span := s.startSpan(ctx, "CreateList")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.query.CreateList(ctx, sqlc.CreateListParams{
		ID:    in.ID,
		Owner: in.Owner,
		Title: in.Title,
	}))
	return err
}

func (s *DB) CreateRecipient(ctx context.Context, in entity.Recipient) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRecipient")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.query.CreateRecipient(ctx, sqlc.CreateRecipientParams{
		ID:     in.ID,
		List:   in.List,
		Email:  in.Email,
		First:  in.First,
		Last:   in.Last,
		Source: in.Source,
		Yaml:   in.YAML,
		Active: in.Active,
	}))
	return err
}

func (s *DB) CreateLane(ctx context.Context, in entity.Lane) (err error) {
	ctx, span := s.startSpan(ctx, "CreateLane")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.query.CreateLane(ctx, sqlc.CreateLaneParams{
		ID:    in.ID,
		Owner: in.Owner,
		Title: in.Title,
	}))
	return err
}

func (s *DB) CreateLetter(ctx context.Context, in entity.Letter) (_ int32, err error) {
	ctx, span := s.startSpan(ctx, "CreateLetter")
	defer func() { s.endSpan(span, err) }()

	place, err := s.query.CreateLetter(ctx, sqlc.CreateLetterParams{
		ID:     in.ID,
		Lane:   in.Lane,
		Title:  in.Title,
		Liquid: in.Liquid,
		Yaml:   in.YAML,
	})
	if err != nil {
		return 0, s.mapError(err)
	}

	return place, nil
}

func (s *DB) CreateCampaign(ctx context.Context, in entity.Campaign) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCampaign")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.query.CreateCampaign(ctx, sqlc.CreateCampaignParams{
		ID:   in.ID,
		List: in.List,
		Lane: in.Lane,
		Yaml: in.YAML,
	}))
	return err
}
