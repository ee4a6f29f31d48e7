package db

import (
	"context"

	"github.com/blueseamans/mailanes/internal/pkg/sqlc"
)

func (s *DB) UpdateRecipientYAML(ctx context.Context, id int64, yaml string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateRecipientYAML")
	defer func() { s.endSpan(span, err) }()

	err = s.affected(s.query.UpdateRecipientYaml(ctx, sqlc.UpdateRecipientYamlParams{ID: id, Yaml: yaml}))
	return err
}

func (s *DB) ToggleRecipient(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ToggleRecipient")
	defer func() { s.endSpan(span, err) }()

	active, err := s.query.ToggleRecipient(ctx, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return active, nil
}

// DeactivateRecipient reports whether the recipient was active before.
func (s *DB) DeactivateRecipient(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeactivateRecipient")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.DeactivateRecipient(ctx, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return rows > 0, nil
}

func (s *DB) UpdateLetter(ctx context.Context, id int64, liquid, yaml string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateLetter")
	defer func() { s.endSpan(span, err) }()

	err = s.affected(s.query.UpdateLetter(ctx, sqlc.UpdateLetterParams{ID: id, Liquid: liquid, Yaml: yaml}))
	return err
}

func (s *DB) ToggleLetter(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ToggleLetter")
	defer func() { s.endSpan(span, err) }()

	active, err := s.query.ToggleLetter(ctx, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return active, nil
}

func (s *DB) UpdateCampaignYAML(ctx context.Context, id int64, yaml string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateCampaignYAML")
	defer func() { s.endSpan(span, err) }()

	err = s.affected(s.query.UpdateCampaignYaml(ctx, sqlc.UpdateCampaignYamlParams{ID: id, Yaml: yaml}))
	return err
}

func (s *DB) ToggleCampaign(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ToggleCampaign")
	defer func() { s.endSpan(span, err) }()

	active, err := s.query.ToggleCampaign(ctx, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return active, nil
}
