package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/shared/document"
)

// DefaultLetterLiquid is the body of a new letter.
const DefaultLetterLiquid = "Hi {{ recipient.first | default: \"there\" }},\n\n"

type (
	CreateLetterInput struct {
		Lane  int64  `validate:"required,gt=0"`
		Title string `validate:"required,notblank,max=128"`
	}

	GetLetterInput struct {
		ID int64 `validate:"required,gt=0"`
	}

	SaveLetterInput struct {
		ID     int64  `validate:"required,gt=0"`
		Liquid string `validate:"max=131072,liquid"`
		YAML   string `validate:"max=65536,yaml"`
	}

	ToggleLetterInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) CreateLetter(ctx context.Context, in CreateLetterInput) (*entity.Letter, error) {
	ctx, span := s.startSpan(ctx, "CreateLetter")
	defer span.End()

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	lane, err := s.findLane(ctx, in.Lane, owner)
	if err != nil {
		return nil, err
	}

	letter := entity.Letter{
		ID:     s.uid.Generate(),
		Lane:   lane.ID,
		Title:  in.Title,
		Liquid: DefaultLetterLiquid,
	}

	place, err := s.repoDB.CreateLetter(ctx, letter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create letter", "lane_id", lane.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	letter.Place = place

	return &letter, nil
}

func (s *Usecase) GetLetter(ctx context.Context, in GetLetterInput) (*entity.Letter, error) {
	ctx, span := s.startSpan(ctx, "GetLetter")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	return s.findLetter(ctx, in.ID, owner)
}

func (s *Usecase) SaveLetter(ctx context.Context, in SaveLetterInput) error {
	ctx, span := s.startSpan(ctx, "SaveLetter")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := document.ParseLetter(in.YAML); err != nil {
		return goerror.NewInvalidInput(nil, "yaml", err.Error())
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	if _, err := s.findLetter(ctx, in.ID, owner); err != nil {
		return err
	}

	if err := s.repoDB.UpdateLetter(ctx, in.ID, in.Liquid, in.YAML); err != nil {
		slog.ErrorContext(ctx, "failed to repo update letter", "letter_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) ToggleLetter(ctx context.Context, in ToggleLetterInput) (bool, error) {
	ctx, span := s.startSpan(ctx, "ToggleLetter")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return false, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return false, err
	}

	if _, err := s.findLetter(ctx, in.ID, owner); err != nil {
		return false, err
	}

	active, err := s.repoDB.ToggleLetter(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo toggle letter", "letter_id", in.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	return active, nil
}

func (s *Usecase) findLetter(ctx context.Context, id int64, owner string) (*entity.Letter, error) {
	letter, err := s.repoDB.GetLetter(ctx, id, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "letter not found", "letter_id", id, "owner", owner)
		return nil, goerror.NewNotFound("letter not found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get letter", "letter_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return letter, nil
}
