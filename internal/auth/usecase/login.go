package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blueseamans/mailanes/internal/auth/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
)

type CallbackInput struct {
	State string `validate:"required,max=128"`
	Code  string `validate:"required,max=512"`
}

// Login stores a fresh OAuth state and returns the GitHub authorize URL
// carrying it.
func (s *Usecase) Login(ctx context.Context) (string, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	state := s.uuid.Generate()
	if err := s.repoState.Save(ctx, state, s.stateTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to repo save oauth state", "error", err)
		return "", goerror.NewServer(err)
	}

	return s.repoGitHub.AuthCodeURL(state), nil
}

// Callback consumes the OAuth state once and resolves the GitHub user.
func (s *Usecase) Callback(ctx context.Context, in CallbackInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "Callback")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ok, err := s.repoState.Consume(ctx, in.State)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume oauth state", "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "oauth state is unknown or already used")
		return nil, goerror.NewBusiness("Login expired, please try again", goerror.CodeUnauthorized)
	}

	user, err := s.repoGitHub.User(ctx, in.Code)
	if errors.Is(err, entity.ErrGitHubRejected) {
		slog.WarnContext(ctx, "github rejected the login", "error", err)
		return nil, goerror.NewBusiness("GitHub login failed", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get github user", "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user logged in", "login", user.Login)
	return user, nil
}
