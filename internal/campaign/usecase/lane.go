package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
)

type (
	CreateLaneInput struct {
		Title string `validate:"required,notblank,max=128"`
	}

	GetLaneInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) ListLanes(ctx context.Context) ([]entity.Lane, error) {
	ctx, span := s.startSpan(ctx, "ListLanes")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	lanes, err := s.repoDB.ListLanes(ctx, owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list lanes", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return lanes, nil
}

func (s *Usecase) CreateLane(ctx context.Context, in CreateLaneInput) (int64, error) {
	ctx, span := s.startSpan(ctx, "CreateLane")
	defer span.End()

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(in); err != nil {
		return 0, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return 0, err
	}

	lane := entity.Lane{
		ID:    s.uid.Generate(),
		Owner: owner,
		Title: in.Title,
	}
	if err := s.repoDB.CreateLane(ctx, lane); err != nil {
		slog.ErrorContext(ctx, "failed to repo create lane", "owner", owner, "error", err)
		return 0, goerror.NewServer(err)
	}

	return lane.ID, nil
}

// GetLane returns the lane with its letters ordered by place.
func (s *Usecase) GetLane(ctx context.Context, in GetLaneInput) (*entity.Lane, error) {
	ctx, span := s.startSpan(ctx, "GetLane")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	return s.findLane(ctx, in.ID, owner)
}

func (s *Usecase) findLane(ctx context.Context, id int64, owner string) (*entity.Lane, error) {
	lane, err := s.repoDB.GetLane(ctx, id, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "lane not found", "lane_id", id, "owner", owner)
		return nil, goerror.NewNotFound("lane not found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get lane", "lane_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return lane, nil
}
