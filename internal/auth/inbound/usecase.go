package inbound

import (
	"context"

	"github.com/blueseamans/mailanes/internal/auth/entity"
	"github.com/blueseamans/mailanes/internal/auth/usecase"
)

type uc interface {
	Hello(ctx context.Context) usecase.HelloOutput
	Version() string
	Login(ctx context.Context) (string, error)
	Callback(ctx context.Context, in usecase.CallbackInput) (*entity.User, error)
}
