package db

import (
	"context"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/sqlc"
	"github.com/samber/lo"
)

func (s *DB) ListLists(ctx context.Context, owner string) (_ []entity.List, err error) {
	ctx, span := s.startSpan(ctx, "ListLists")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListListsByOwner(ctx, owner)
	if err != nil {
		return nil, s.mapError(err)
	}

	lists := make([]entity.List, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, entity.List{
			ID:         row.ID,
			Owner:      row.Owner,
			Title:      row.Title,
			Recipients: row.Recipients,
			Created:    row.Created.Time,
		})
	}

	return lists, nil
}

func (s *DB) GetList(ctx context.Context, id int64, owner string) (_ *entity.List, err error) {
	ctx, span := s.startSpan(ctx, "GetList")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetListByOwner(ctx, sqlc.GetListByOwnerParams{ID: id, Owner: owner})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.List{
		ID:         row.ID,
		Owner:      row.Owner,
		Title:      row.Title,
		Recipients: row.Recipients,
		Created:    row.Created.Time,
	}, nil
}

func (s *DB) ListRecipients(ctx context.Context, list int64, limit, offset int32) (_ []entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "ListRecipients")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListRecipientsByList(ctx, sqlc.ListRecipientsByListParams{
		List: list,
		Lim:  limit,
		Off:  offset,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return toRecipients(rows), nil
}

func (s *DB) ListAllRecipients(ctx context.Context, list int64) (_ []entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "ListAllRecipients")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListAllRecipientsByList(ctx, list)
	if err != nil {
		return nil, s.mapError(err)
	}

	return toRecipients(rows), nil
}

func (s *DB) GetRecipient(ctx context.Context, id int64, owner string) (_ *entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "GetRecipient")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetRecipientByOwner(ctx, sqlc.GetRecipientByOwnerParams{ID: id, Owner: owner})
	if err != nil {
		return nil, s.mapError(err)
	}

	recipient := toRecipient(row)
	return &recipient, nil
}

func (s *DB) ListLanes(ctx context.Context, owner string) (_ []entity.Lane, err error) {
	ctx, span := s.startSpan(ctx, "ListLanes")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListLanesByOwner(ctx, owner)
	if err != nil {
		return nil, s.mapError(err)
	}

	lanes := make([]entity.Lane, 0, len(rows))
	for _, row := range rows {
		lanes = append(lanes, entity.Lane{
			ID:      row.ID,
			Owner:   row.Owner,
			Title:   row.Title,
			Created: row.Created.Time,
		})
	}

	return lanes, nil
}

func (s *DB) GetLane(ctx context.Context, id int64, owner string) (_ *entity.Lane, err error) {
	ctx, span := s.startSpan(ctx, "GetLane")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetLaneByOwner(ctx, sqlc.GetLaneByOwnerParams{ID: id, Owner: owner})
	if err != nil {
		return nil, s.mapError(err)
	}

	letters, err := s.query.ListLettersByLane(ctx, row.ID)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.Lane{
		ID:      row.ID,
		Owner:   row.Owner,
		Title:   row.Title,
		Created: row.Created.Time,
		Letters: lo.Map(letters, func(l sqlc.Letter, _ int) entity.Letter { return toLetter(l) }),
	}, nil
}

func (s *DB) GetLetter(ctx context.Context, id int64, owner string) (_ *entity.Letter, err error) {
	ctx, span := s.startSpan(ctx, "GetLetter")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetLetterByOwner(ctx, sqlc.GetLetterByOwnerParams{ID: id, Owner: owner})
	if err != nil {
		return nil, s.mapError(err)
	}

	letter := toLetter(row)
	return &letter, nil
}

func (s *DB) ListCampaigns(ctx context.Context, owner string) (_ []entity.Campaign, err error) {
	ctx, span := s.startSpan(ctx, "ListCampaigns")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListCampaignsByOwner(ctx, owner)
	if err != nil {
		return nil, s.mapError(err)
	}

	campaigns := make([]entity.Campaign, 0, len(rows))
	for _, row := range rows {
		campaigns = append(campaigns, entity.Campaign{
			ID:        row.ID,
			List:      row.List,
			Lane:      row.Lane,
			YAML:      row.Yaml,
			Active:    row.Active,
			Created:   row.Created.Time,
			ListTitle: row.ListTitle,
			LaneTitle: row.LaneTitle,
		})
	}

	return campaigns, nil
}

func (s *DB) GetCampaign(ctx context.Context, id int64, owner string) (_ *entity.Campaign, err error) {
	ctx, span := s.startSpan(ctx, "GetCampaign")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetCampaignByOwner(ctx, sqlc.GetCampaignByOwnerParams{ID: id, Owner: owner})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.Campaign{
		ID:        row.ID,
		List:      row.List,
		Lane:      row.Lane,
		YAML:      row.Yaml,
		Active:    row.Active,
		Created:   row.Created.Time,
		ListTitle: row.ListTitle,
		LaneTitle: row.LaneTitle,
	}, nil
}

func toRecipient(row sqlc.Recipient) entity.Recipient {
	return entity.Recipient{
		ID:      row.ID,
		List:    row.List,
		Email:   row.Email,
		First:   row.First,
		Last:    row.Last,
		Source:  row.Source,
		YAML:    row.Yaml,
		Active:  row.Active,
		Created: row.Created.Time,
	}
}

func toRecipients(rows []sqlc.Recipient) []entity.Recipient {
	return lo.Map(rows, func(row sqlc.Recipient, _ int) entity.Recipient { return toRecipient(row) })
}

func toLetter(row sqlc.Letter) entity.Letter {
	return entity.Letter{
		ID:      row.ID,
		Lane:    row.Lane,
		Place:   row.Place,
		Title:   row.Title,
		Liquid:  row.Liquid,
		YAML:    row.Yaml,
		Active:  row.Active,
		Created: row.Created.Time,
	}
}
