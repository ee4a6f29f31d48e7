package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/blueseamans/mailanes/internal/auth/entity"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
)

const defaultStateTTL = 10 * time.Minute

type repoState interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume deletes the state and reports whether it existed.
	Consume(ctx context.Context, state string) (bool, error)
}

type repoGitHub interface {
	AuthCodeURL(state string) string
	// User exchanges the authorization code and returns the account behind it.
	User(ctx context.Context, code string) (*entity.User, error)
}

type Usecase struct {
	repoState  repoState
	repoGitHub repoGitHub
	validator  validator.Validator
	cfg        config.Config
	uuid       uid.StringID
	ins        instrument.Instrumentation
}

type Dependency struct {
	RepoState  repoState
	RepoGitHub repoGitHub
	Validator  validator.Validator
	Config     config.Config
	UUID       uid.StringID
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoState:  dep.RepoState,
		repoGitHub: dep.RepoGitHub,
		validator:  dep.Validator,
		cfg:        dep.Config,
		uuid:       dep.UUID,
		ins:        dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) stateTTL() time.Duration {
	if ttl := s.cfg.GetSecond("auth.state_ttl_seconds"); ttl > 0 {
		return ttl
	}
	return defaultStateTTL
}
