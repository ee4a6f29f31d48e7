package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/blueseamans/mailanes/internal/auth"
	"github.com/blueseamans/mailanes/internal/campaign"
	"github.com/blueseamans/mailanes/internal/delivery"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
)

// background is the context handed to consumers and workers, or nil when
// app.api_only is set.
func (a *App) background() context.Context {
	if a.config.GetBool("app.api_only") {
		return nil
	}
	return a.ctx
}

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		Router:     a.router,
		CacheConn:  a.cacheConn,
		Session:    a.session,
		Config:     a.config,
		Instrument: a.ins,
		UUID:       uid.NewRandomUUID(),
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}

	if err := campaign.New(campaign.Dependency{
		Ctx:        a.background(),
		DBConn:     a.dbConn,
		Goroutine:  a.goroutine,
		Router:     a.router,
		Messaging:  a.messaging,
		Storage:    a.storage,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		UUID:       a.uuid,
		Clock:      a.clock,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module campaign", "error", err)
		os.Exit(1)
	}

	if err := delivery.New(delivery.Dependency{
		Ctx:         a.background(),
		DBConn:      a.dbConn,
		Goroutine:   a.goroutine,
		Router:      a.router,
		Messaging:   a.messaging,
		Postman:     a.postman,
		Idempotency: a.idemp,
		Sealer:      a.sealer,
		Config:      a.config,
		Instrument:  a.ins,
		UID:         a.uid,
		UUID:        a.uuid,
		Clock:       a.clock,
		Validator:   a.validator,
	}); err != nil {
		slog.Error("failed to init module delivery", "error", err)
		os.Exit(1)
	}
}
