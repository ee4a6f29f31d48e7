package auth

import (
	"github.com/redis/go-redis/v9"

	"github.com/blueseamans/mailanes/internal/auth/inbound"
	"github.com/blueseamans/mailanes/internal/auth/outbound/github"
	"github.com/blueseamans/mailanes/internal/auth/outbound/state"
	"github.com/blueseamans/mailanes/internal/auth/usecase"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/router"
	"github.com/blueseamans/mailanes/internal/pkg/session"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
)

// PublicRoutes are the GET routes of this module reachable without a session.
var PublicRoutes = inbound.PublicRoutes

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	CacheConn  redis.UniversalClient      `validate:"required"`
	Session    *session.Manager           `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	gh := github.New(github.Config{
		ClientID:     dep.Config.GetString("github.client_id"),
		ClientSecret: dep.Config.GetString("github.client_secret"),
		RedirectURL:  dep.Config.GetString("github.redirect_url"),
		AuthURL:      dep.Config.GetString("github.auth_url"),
		TokenURL:     dep.Config.GetString("github.token_url"),
		APIURL:       dep.Config.GetString("github.api_url"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoState:  state.NewRedis(dep.CacheConn, dep.Instrument),
		RepoGitHub: gh,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UUID:       dep.UUID,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Session)

	return nil
}
