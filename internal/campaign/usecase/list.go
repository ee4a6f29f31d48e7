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
	CreateListInput struct {
		Title string `validate:"required,notblank,max=128"`
	}

	GetListInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) ListLists(ctx context.Context) ([]entity.List, error) {
	ctx, span := s.startSpan(ctx, "ListLists")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	lists, err := s.repoDB.ListLists(ctx, owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list lists", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return lists, nil
}

func (s *Usecase) CreateList(ctx context.Context, in CreateListInput) (int64, error) {
	ctx, span := s.startSpan(ctx, "CreateList")
	defer span.End()

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(in); err != nil {
		return 0, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return 0, err
	}

	list := entity.List{
		ID:    s.uid.Generate(),
		Owner: owner,
		Title: in.Title,
	}
	if err := s.repoDB.CreateList(ctx, list); err != nil {
		slog.ErrorContext(ctx, "failed to repo create list", "owner", owner, "error", err)
		return 0, goerror.NewServer(err)
	}

	return list.ID, nil
}

func (s *Usecase) GetList(ctx context.Context, in GetListInput) (*entity.List, error) {
	ctx, span := s.startSpan(ctx, "GetList")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	return s.findList(ctx, in.ID, owner)
}

func (s *Usecase) findList(ctx context.Context, id int64, owner string) (*entity.List, error) {
	list, err := s.repoDB.GetList(ctx, id, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "list not found", "list_id", id, "owner", owner)
		return nil, goerror.NewNotFound("list not found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get list", "list_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return list, nil
}
