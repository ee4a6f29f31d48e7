package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/shared/document"
)

type (
	FetchCampaignInput struct {
		ID int64 `validate:"required,gt=0"`
	}

	ConsumeCampaignActivatedInput struct {
		CampaignID int64 `validate:"required,gt=0"`
	}
)

// Fetch runs one pipeline pass over every active campaign. A failing
// campaign is logged and does not stop the others.
func (s *Usecase) Fetch(ctx context.Context) (*entity.FetchResult, error) {
	ctx, span := s.startSpan(ctx, "Fetch")
	defer span.End()

	campaigns, err := s.repoDB.ListActiveCampaigns(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list active campaigns", "error", err)
		return nil, goerror.NewServer(err)
	}

	total := &entity.FetchResult{}
	for _, c := range campaigns {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}

		res, err := s.fetch(ctx, c)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch campaign", "campaign_id", c.ID, "error", err)
			continue
		}
		total.Add(res)
	}

	return total, nil
}

// FetchCampaign runs the pipeline for one campaign of the current user.
func (s *Usecase) FetchCampaign(ctx context.Context, in FetchCampaignInput) (*entity.FetchResult, error) {
	ctx, span := s.startSpan(ctx, "FetchCampaign")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.findCampaign(ctx, in.ID, owner)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, goerror.NewBusiness("campaign is not active", goerror.CodeConflict)
	}

	res, err := s.fetch(ctx, *c)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch campaign", "campaign_id", c.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &res, nil
}

// ConsumeCampaignActivated starts delivering a campaign right after it is
// switched on. A campaign switched off again in the meantime is ignored.
func (s *Usecase) ConsumeCampaignActivated(ctx context.Context, in ConsumeCampaignActivatedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeCampaignActivated")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	c, err := s.repoDB.GetActiveCampaign(ctx, in.CampaignID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.InfoContext(ctx, "activated campaign is no longer active", "campaign_id", in.CampaignID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get active campaign", "campaign_id", in.CampaignID, "error", err)
		return goerror.NewServer(err)
	}

	res, err := s.fetch(ctx, *c)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch campaign", "campaign_id", c.ID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "activated campaign fetched", "campaign_id", c.ID, "sent", res.Sent, "failed", res.Failed)
	return nil
}

func (s *Usecase) fetch(ctx context.Context, c entity.Campaign) (entity.FetchResult, error) {
	ctx, span := s.startSpan(ctx, "fetch")
	defer span.End()

	res := entity.FetchResult{Campaigns: 1}

	doc, err := document.ParseCampaign(c.YAML)
	if err != nil {
		slog.WarnContext(ctx, "campaign yaml is invalid, skipped", "campaign_id", c.ID, "error", err)
		return res, nil
	}

	speed := doc.Speed
	if speed == 0 {
		speed = s.defaultSpeed()
	}

	now := s.clock.Now()
	used, err := s.repoDB.CountDeliveriesSince(ctx, c.ID, now.Add(-speedWindow))
	if err != nil {
		return res, err
	}

	budget := int64(speed) - used
	if budget <= 0 {
		slog.InfoContext(ctx, "campaign reached its speed", "campaign_id", c.ID, "speed", speed, "used", used)
		return res, nil
	}

	var after int64
	for budget > 0 {
		candidates, err := s.repoDB.ListCandidates(ctx, c, after, candidatePageSize)
		if err != nil {
			return res, err
		}

		for _, cand := range candidates {
			after = cand.Recipient.ID
			if budget == 0 {
				break
			}

			status, err := s.deliver(ctx, c, doc, cand, now)
			if err != nil {
				return res, err
			}

			switch status {
			case entity.StatusSent:
				res.Sent++
				budget--
			case entity.StatusFailed:
				res.Failed++
				budget--
			default:
				res.Skipped++
			}
		}

		if int32(len(candidates)) < candidatePageSize {
			break
		}
	}

	return res, nil
}

// deliver returns "" when the candidate is not due or was taken by another worker.
func (s *Usecase) deliver(ctx context.Context, c entity.Campaign, doc document.Campaign, cand entity.Candidate, now time.Time) (entity.Status, error) {
	letterDoc, err := document.ParseLetter(cand.Letter.YAML)
	if err != nil {
		slog.WarnContext(ctx, "letter yaml is invalid, skipped", "letter_id", cand.Letter.ID, "error", err)
		return "", nil
	}

	due := cand.Since.Add(time.Duration(letterDoc.Delay) * day)
	if due.After(now) {
		return "", nil
	}

	id := s.uid.Generate()
	created, err := s.repoDB.CreateDelivery(ctx, id, c.ID, cand.Recipient.ID, cand.Letter.ID)
	if err != nil {
		return "", err
	}
	if !created {
		slog.InfoContext(ctx, "delivery already exists", "recipient_id", cand.Recipient.ID, "letter_id", cand.Letter.ID)
		return "", nil
	}

	return s.send(ctx, letterJob{
		DeliveryID:  id,
		Campaign:    c,
		CampaignDoc: doc,
		Recipient:   cand.Recipient,
		Letter:      cand.Letter,
		LetterDoc:   letterDoc,
	})
}
