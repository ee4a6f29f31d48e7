package inbound

import (
	"context"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/delivery/usecase"
)

type ucWorker interface {
	Fetch(ctx context.Context) (*entity.FetchResult, error)
	Retry(ctx context.Context) (*entity.FetchResult, error)
}

type ucConsumer interface {
	ConsumeCampaignActivated(ctx context.Context, in usecase.ConsumeCampaignActivatedInput) error
}

type uc interface {
	Report(ctx context.Context, in usecase.ReportInput) (*entity.Report, error)
	FetchCampaign(ctx context.Context, in usecase.FetchCampaignInput) (*entity.FetchResult, error)
	Unsubscribe(ctx context.Context, in usecase.UnsubscribeInput) error
}
