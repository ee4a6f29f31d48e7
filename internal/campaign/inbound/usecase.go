package inbound

import (
	"context"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/campaign/usecase"
)

type ucConsumer interface {
	DeactivateRecipient(ctx context.Context, in usecase.DeactivateRecipientInput) error
}

type uc interface {
	ucConsumer

	ListLists(ctx context.Context) ([]entity.List, error)
	CreateList(ctx context.Context, in usecase.CreateListInput) (int64, error)
	GetList(ctx context.Context, in usecase.GetListInput) (*entity.List, error)
	ListRecipients(ctx context.Context, in usecase.ListRecipientsInput) (*usecase.ListRecipientsOutput, error)
	AddRecipient(ctx context.Context, in usecase.AddRecipientInput) (int64, error)
	ImportRecipients(ctx context.Context, in usecase.ImportRecipientsInput) (*entity.ImportResult, error)
	ExportRecipients(ctx context.Context, in usecase.ExportRecipientsInput) (*usecase.ExportRecipientsOutput, error)

	GetRecipient(ctx context.Context, in usecase.GetRecipientInput) (*entity.Recipient, error)
	SaveRecipientYAML(ctx context.Context, in usecase.SaveRecipientYAMLInput) error
	ToggleRecipient(ctx context.Context, in usecase.ToggleRecipientInput) (bool, error)

	ListLanes(ctx context.Context) ([]entity.Lane, error)
	CreateLane(ctx context.Context, in usecase.CreateLaneInput) (int64, error)
	GetLane(ctx context.Context, in usecase.GetLaneInput) (*entity.Lane, error)

	CreateLetter(ctx context.Context, in usecase.CreateLetterInput) (*entity.Letter, error)
	GetLetter(ctx context.Context, in usecase.GetLetterInput) (*entity.Letter, error)
	SaveLetter(ctx context.Context, in usecase.SaveLetterInput) error
	ToggleLetter(ctx context.Context, in usecase.ToggleLetterInput) (bool, error)

	ListCampaigns(ctx context.Context) ([]entity.Campaign, error)
	CreateCampaign(ctx context.Context, in usecase.CreateCampaignInput) (int64, error)
	GetCampaign(ctx context.Context, in usecase.GetCampaignInput) (*entity.Campaign, error)
	SaveCampaignYAML(ctx context.Context, in usecase.SaveCampaignYAMLInput) error
	ToggleCampaign(ctx context.Context, in usecase.ToggleCampaignInput) (bool, error)
}
