package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
)

const (
	defaultRecipientPageSize int32 = 25
	maxRecipientPageSize     int32 = 100
)

type (
	ListRecipientsInput struct {
		List int64 `validate:"required,gt=0"`
		Page int32 `validate:"gte=0"`
		Size int32 `validate:"gte=0"`
	}

	ListRecipientsOutput struct {
		Recipients []entity.Recipient
		Page       int32
		Size       int32
		Total      int64
	}

	AddRecipientInput struct {
		List  int64  `validate:"required,gt=0"`
		Email string `validate:"required,email,max=254"`
		First string `validate:"max=128"`
		Last  string `validate:"max=128"`
	}
)

func (s *Usecase) ListRecipients(ctx context.Context, in ListRecipientsInput) (*ListRecipientsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListRecipients")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.findList(ctx, in.List, owner)
	if err != nil {
		return nil, err
	}

	page := max(in.Page, 1)
	size := in.Size
	if size == 0 {
		size = defaultRecipientPageSize
	}
	size = min(size, maxRecipientPageSize)

	recipients, err := s.repoDB.ListRecipients(ctx, list.ID, size, (page-1)*size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list recipients", "list_id", list.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListRecipientsOutput{
		Recipients: recipients,
		Page:       page,
		Size:       size,
		Total:      list.Recipients,
	}, nil
}

func (s *Usecase) AddRecipient(ctx context.Context, in AddRecipientInput) (int64, error) {
	ctx, span := s.startSpan(ctx, "AddRecipient")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.First = strings.TrimSpace(in.First)
	in.Last = strings.TrimSpace(in.Last)

	if err := s.validator.Validate(in); err != nil {
		return 0, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return 0, err
	}

	list, err := s.findList(ctx, in.List, owner)
	if err != nil {
		return 0, err
	}

	recipient := entity.Recipient{
		ID:     s.uid.Generate(),
		List:   list.ID,
		Email:  in.Email,
		First:  in.First,
		Last:   in.Last,
		Source: "@" + owner,
		Active: true,
	}

	err = s.repoDB.CreateRecipient(ctx, recipient)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "recipient already exists", "list_id", list.ID, "email", in.Email)
		return 0, goerror.NewBusiness("recipient with that email already exists in the list", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create recipient", "list_id", list.ID, "error", err)
		return 0, goerror.NewServer(err)
	}

	return recipient.ID, nil
}
