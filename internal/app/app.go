package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/blueseamans/mailanes/internal/pkg/clock"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goroutine"
	"github.com/blueseamans/mailanes/internal/pkg/hash"
	"github.com/blueseamans/mailanes/internal/pkg/idempotency"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/messaging"
	"github.com/blueseamans/mailanes/internal/pkg/postman"
	"github.com/blueseamans/mailanes/internal/pkg/router"
	"github.com/blueseamans/mailanes/internal/pkg/secret"
	"github.com/blueseamans/mailanes/internal/pkg/session"
	"github.com/blueseamans/mailanes/internal/pkg/storage"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	sealer    secret.Sealer
	session   *session.Manager

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	postman   postman.Postman
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initSession()
	app.initDatabase()
	app.initCache()
	app.initPostman()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
