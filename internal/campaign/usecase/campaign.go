package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/shared/document"
)

type (
	CreateCampaignInput struct {
		List  int64  `validate:"required,gt=0"`
		Lane  int64  `validate:"required,gt=0"`
		Title string `validate:"required,notblank,max=128"`
	}

	GetCampaignInput struct {
		ID int64 `validate:"required,gt=0"`
	}

	SaveCampaignYAMLInput struct {
		ID   int64  `validate:"required,gt=0"`
		YAML string `validate:"max=65536,yaml"`
	}

	ToggleCampaignInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) ListCampaigns(ctx context.Context) ([]entity.Campaign, error) {
	ctx, span := s.startSpan(ctx, "ListCampaigns")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.repoDB.ListCampaigns(ctx, owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list campaigns", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return campaigns, nil
}

func (s *Usecase) CreateCampaign(ctx context.Context, in CreateCampaignInput) (int64, error) {
	ctx, span := s.startSpan(ctx, "CreateCampaign")
	defer span.End()

	in.Title = strings.TrimSpace(in.Title)
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

	lane, err := s.findLane(ctx, in.Lane, owner)
	if err != nil {
		return 0, err
	}

	raw, err := yaml.Marshal(document.Campaign{Title: in.Title})
	if err != nil {
		return 0, goerror.NewServer(err)
	}

	campaign := entity.Campaign{
		ID:   s.uid.Generate(),
		List: list.ID,
		Lane: lane.ID,
		YAML: string(raw),
	}
	if err := s.repoDB.CreateCampaign(ctx, campaign); err != nil {
		slog.ErrorContext(ctx, "failed to repo create campaign", "list_id", list.ID, "lane_id", lane.ID, "error", err)
		return 0, goerror.NewServer(err)
	}

	return campaign.ID, nil
}

func (s *Usecase) GetCampaign(ctx context.Context, in GetCampaignInput) (*entity.Campaign, error) {
	ctx, span := s.startSpan(ctx, "GetCampaign")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	return s.findCampaign(ctx, in.ID, owner)
}

func (s *Usecase) SaveCampaignYAML(ctx context.Context, in SaveCampaignYAMLInput) error {
	ctx, span := s.startSpan(ctx, "SaveCampaignYAML")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := document.ParseCampaign(in.YAML); err != nil {
		return goerror.NewInvalidInput(nil, "yaml", err.Error())
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	if _, err := s.findCampaign(ctx, in.ID, owner); err != nil {
		return err
	}

	if err := s.repoDB.UpdateCampaignYAML(ctx, in.ID, in.YAML); err != nil {
		slog.ErrorContext(ctx, "failed to repo update campaign yaml", "campaign_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// ToggleCampaign flips the campaign state and announces an activation so the
// delivery pipeline can start without waiting for its next tick.
func (s *Usecase) ToggleCampaign(ctx context.Context, in ToggleCampaignInput) (bool, error) {
	ctx, span := s.startSpan(ctx, "ToggleCampaign")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return false, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return false, err
	}

	if _, err := s.findCampaign(ctx, in.ID, owner); err != nil {
		return false, err
	}

	active, err := s.repoDB.ToggleCampaign(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo toggle campaign", "campaign_id", in.ID, "error", err)
		return false, goerror.NewServer(err)
	}

	if active {
		if err := s.repoMessaging.PublishCampaignActivated(ctx, CampaignActivatedEvent{
			CampaignID: in.ID,
			Owner:      owner,
		}); err != nil {
			// the periodic fetch still picks the campaign up
			slog.WarnContext(ctx, "failed to publish campaign activated", "campaign_id", in.ID, "error", err)
		}
	}

	return active, nil
}

func (s *Usecase) findCampaign(ctx context.Context, id int64, owner string) (*entity.Campaign, error) {
	campaign, err := s.repoDB.GetCampaign(ctx, id, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "campaign not found", "campaign_id", id, "owner", owner)
		return nil, goerror.NewNotFound("campaign not found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get campaign", "campaign_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return campaign, nil
}
