package delivery

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blueseamans/mailanes/internal/delivery/inbound"
	"github.com/blueseamans/mailanes/internal/delivery/outbound/db"
	"github.com/blueseamans/mailanes/internal/delivery/outbound/email"
	"github.com/blueseamans/mailanes/internal/delivery/outbound/mq"
	"github.com/blueseamans/mailanes/internal/delivery/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/clock"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goroutine"
	"github.com/blueseamans/mailanes/internal/pkg/idempotency"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/messaging"
	"github.com/blueseamans/mailanes/internal/pkg/postman"
	"github.com/blueseamans/mailanes/internal/pkg/router"
	"github.com/blueseamans/mailanes/internal/pkg/secret"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
)

// PublicRoutes are the GET routes of this module reachable without a session.
var PublicRoutes = inbound.PublicRoutes

type Dependency struct {
	// Ctx is nil when background work must not run, for example in api only mode.
	Ctx         context.Context
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Postman     postman.Postman            `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Sealer      secret.Sealer              `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		RepoMail:      email.New(dep.Postman, dep.Instrument),
		Idempotency:   dep.Idempotency,
		Sealer:        dep.Sealer,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
		inbound.RegisterWorker(dep.Ctx, dep.Config, dep.Goroutine, dep.UUID, uc)
	}

	return nil
}
