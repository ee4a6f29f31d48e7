package usecase

import (
	"context"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/clock"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/jwt"
	"github.com/blueseamans/mailanes/internal/pkg/storage"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type CampaignActivatedEvent struct {
	CampaignID int64
	Owner      string
}

type repoMessaging interface {
	PublishCampaignActivated(ctx context.Context, msg CampaignActivatedEvent) error
}

type repoDB interface {
	ListLists(ctx context.Context, owner string) ([]entity.List, error)
	CreateList(ctx context.Context, in entity.List) error
	GetList(ctx context.Context, id int64, owner string) (*entity.List, error)

	ListRecipients(ctx context.Context, list int64, limit, offset int32) ([]entity.Recipient, error)
	ListAllRecipients(ctx context.Context, list int64) ([]entity.Recipient, error)
	CreateRecipient(ctx context.Context, in entity.Recipient) error
	// ImportRecipients inserts in one transaction and ignores duplicate emails.
	ImportRecipients(ctx context.Context, in []entity.Recipient) (created int, err error)
	GetRecipient(ctx context.Context, id int64, owner string) (*entity.Recipient, error)
	UpdateRecipientYAML(ctx context.Context, id int64, yaml string) error
	ToggleRecipient(ctx context.Context, id int64) (bool, error)
	DeactivateRecipient(ctx context.Context, id int64) (bool, error)

	ListLanes(ctx context.Context, owner string) ([]entity.Lane, error)
	CreateLane(ctx context.Context, in entity.Lane) error
	GetLane(ctx context.Context, id int64, owner string) (*entity.Lane, error)

	CreateLetter(ctx context.Context, in entity.Letter) (place int32, err error)
	GetLetter(ctx context.Context, id int64, owner string) (*entity.Letter, error)
	UpdateLetter(ctx context.Context, id int64, liquid, yaml string) error
	ToggleLetter(ctx context.Context, id int64) (bool, error)

	ListCampaigns(ctx context.Context, owner string) ([]entity.Campaign, error)
	CreateCampaign(ctx context.Context, in entity.Campaign) error
	GetCampaign(ctx context.Context, id int64, owner string) (*entity.Campaign, error)
	UpdateCampaignYAML(ctx context.Context, id int64, yaml string) error
	ToggleCampaign(ctx context.Context, id int64) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("campaign.usecase").Start(ctx, name)
}

func (s *Usecase) owner(ctx context.Context) (string, error) {
	owner := jwt.Owner(ctx)
	if owner == "" {
		return "", goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return owner, nil
}
