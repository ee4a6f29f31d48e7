package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/clock"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/idempotency"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/jwt"
	"github.com/blueseamans/mailanes/internal/pkg/postman"
	"github.com/blueseamans/mailanes/internal/pkg/secret"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
	"github.com/blueseamans/mailanes/internal/pkg/valueobject"
)

type RecipientUnsubscribedEvent struct {
	RecipientID int64
	DeliveryID  int64
}

type repoMessaging interface {
	PublishRecipientUnsubscribed(ctx context.Context, msg RecipientUnsubscribedEvent) error
}

type repoMail interface {
	Send(ctx context.Context, env postman.Envelope) error
}

type repoDB interface {
	ListActiveCampaigns(ctx context.Context) ([]entity.Campaign, error)
	GetActiveCampaign(ctx context.Context, id int64) (*entity.Campaign, error)
	GetCampaign(ctx context.Context, id int64, owner string) (*entity.Campaign, error)

	CountDeliveriesSince(ctx context.Context, campaign int64, since time.Time) (int64, error)
	// ListCandidates returns candidates of recipients with an id above after, ordered by id.
	ListCandidates(ctx context.Context, c entity.Campaign, after int64, limit int32) ([]entity.Candidate, error)
	// CreateDelivery reports false when the recipient already has that letter.
	CreateDelivery(ctx context.Context, id, campaign, recipient, letter int64) (bool, error)
	MarkSent(ctx context.Context, id int64, details valueobject.JSONMap) error
	MarkFailed(ctx context.Context, id int64, nextRetryAt time.Time, details valueobject.JSONMap) error

	// ListRetryable returns failed deliveries due at now, plus queued or retry
	// deliveries untouched since staleBefore.
	ListRetryable(ctx context.Context, now, staleBefore time.Time, maxAttempts, limit int32) ([]entity.Retryable, error)
	// ClaimRetry reports false when another worker already claimed the delivery.
	ClaimRetry(ctx context.Context, id int64, staleBefore time.Time) (bool, error)
	// ReleaseRetry puts a queued or claimed delivery back to failed without
	// counting an attempt.
	ReleaseRetry(ctx context.Context, id int64, nextRetryAt time.Time) error

	ListDeliveries(ctx context.Context, campaign int64, limit int32) ([]entity.Delivery, error)
	CountByStatus(ctx context.Context, campaign int64) (map[entity.Status]int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoMail      repoMail
	idempotency   idempotency.Idempotency
	sealer        secret.Sealer
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoMail      repoMail
	Idempotency   idempotency.Idempotency
	Sealer        secret.Sealer
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoMail:      dep.RepoMail,
		idempotency:   dep.Idempotency,
		sealer:        dep.Sealer,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("delivery.usecase").Start(ctx, name)
}

func (s *Usecase) owner(ctx context.Context) (string, error) {
	owner := jwt.Owner(ctx)
	if owner == "" {
		return "", goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return owner, nil
}
