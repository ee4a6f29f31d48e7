package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/shared/document"
)

type (
	GetRecipientInput struct {
		ID int64 `validate:"required,gt=0"`
	}

	SaveRecipientYAMLInput struct {
		ID   int64  `validate:"required,gt=0"`
		YAML string `validate:"max=65536,yaml"`
	}

	ToggleRecipientInput struct {
		ID int64 `validate:"required,gt=0"`
	}

	DeactivateRecipientInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) GetRecipient(ctx context.Context, in GetRecipientInput) (*entity.Recipient, error) {
	ctx, span := s.startSpan(ctx, "GetRecipient")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	return s.findRecipient(ctx, in.ID, owner)
}

func (s *Usecase) SaveRecipientYAML(ctx context.Context, in SaveRecipientYAMLInput) error {
	ctx, span := s.startSpan(ctx, "SaveRecipientYAML")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := document.ParseMap(in.YAML); err != nil {
		return goerror.NewInvalidInput(nil, "yaml", err.Error())
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	if _, err := s.findRecipient(ctx, in.ID, owner); err != nil {
		return err
	}

	if err := s.repoDB.UpdateRecipientYAML(ctx, in.ID, in.YAML); err != nil {
		slog.ErrorContext(ctx, "failed to repo update recipient yaml", "recipient_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) ToggleRecipient(ctx context.Context, in ToggleRecipientInput) (bool, error) {
	ctx, span := s.startSpan(ctx, "ToggleRecipient")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return false, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return false, err
	}

	if _, err := s.findRecipient(ctx, in.ID, owner); err != nil {
		return false, err
	}

	active, err := s.repoDB.ToggleRecipient(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo toggle recipient", "recipient_id", in.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	return active, nil
}

// DeactivateRecipient runs for an unsubscribe link, so it is not owner scoped.
// Deactivating an inactive or deleted recipient is not an error.
func (s *Usecase) DeactivateRecipient(ctx context.Context, in DeactivateRecipientInput) error {
	ctx, span := s.startSpan(ctx, "DeactivateRecipient")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	changed, err := s.repoDB.DeactivateRecipient(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo deactivate recipient", "recipient_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !changed {
		slog.InfoContext(ctx, "recipient already inactive", "recipient_id", in.ID)
	}

	return nil
}

func (s *Usecase) findRecipient(ctx context.Context, id int64, owner string) (*entity.Recipient, error) {
	recipient, err := s.repoDB.GetRecipient(ctx, id, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "recipient not found", "recipient_id", id, "owner", owner)
		return nil, goerror.NewNotFound("recipient not found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get recipient", "recipient_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return recipient, nil
}
