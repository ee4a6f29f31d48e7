package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/shared/document"
)

const (
	defaultReportLimit int32 = 100
	maxReportLimit     int32 = 1000
)

type ReportInput struct {
	Campaign int64 `validate:"required,gt=0"`
	Limit    int32 `validate:"gte=0"`
}

func (s *Usecase) Report(ctx context.Context, in ReportInput) (*entity.Report, error) {
	ctx, span := s.startSpan(ctx, "Report")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.findCampaign(ctx, in.Campaign, owner)
	if err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultReportLimit
	}
	limit = min(limit, maxReportLimit)

	deliveries, err := s.repoDB.ListDeliveries(ctx, c.ID, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list deliveries", "campaign_id", c.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	counts, err := s.repoDB.CountByStatus(ctx, c.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count deliveries", "campaign_id", c.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	title := ""
	if doc, err := document.ParseCampaign(c.YAML); err == nil {
		title = doc.Title
	}

	return &entity.Report{
		CampaignID: c.ID,
		Title:      title,
		Active:     c.Active,
		Deliveries: deliveries,
		Counts:     counts,
	}, nil
}

func (s *Usecase) findCampaign(ctx context.Context, id int64, owner string) (*entity.Campaign, error) {
	c, err := s.repoDB.GetCampaign(ctx, id, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "campaign not found", "campaign_id", id, "owner", owner)
		return nil, goerror.NewNotFound("campaign not found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get campaign", "campaign_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return c, nil
}
