package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueseamans/mailanes/internal/auth/entity"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
)

type memState struct {
	states map[string]time.Duration
	err    error
}

func (m *memState) Save(_ context.Context, state string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.states[state] = ttl
	return nil
}

func (m *memState) Consume(_ context.Context, state string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.states[state]
	delete(m.states, state)
	return ok, nil
}

type fakeGitHub struct {
	err error
}

func (fakeGitHub) AuthCodeURL(state string) string {
	return "https://github.com/login/oauth/authorize?state=" + state
}

func (f fakeGitHub) User(_ context.Context, code string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.User{Login: "user-" + code}, nil
}

type staticID struct{}

func (staticID) Generate() string { return "st-1" }

func newUsecase(t *testing.T, st *memState, gh fakeGitHub) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  base_url: https://mailanes.test/
  version: 1.2.3
auth:
  state_ttl_seconds: 300
`))
	require.NoError(t, err)

	return New(Dependency{
		RepoState:  st,
		RepoGitHub: gh,
		Validator:  v,
		Config:     cfg,
		UUID:       staticID{},
		Instrument: instrument.NewNoop(),
	})
}

func TestLoginAndCallback(t *testing.T) {
	st := &memState{states: map[string]time.Duration{}}
	uc := newUsecase(t, st, fakeGitHub{})

	url, err := uc.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/login/oauth/authorize?state=st-1", url)
	assert.Equal(t, 5*time.Minute, st.states["st-1"])

	user, err := uc.Callback(context.Background(), CallbackInput{State: "st-1", Code: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "user-abc", user.Login)

	_, err = uc.Callback(context.Background(), CallbackInput{State: "st-1", Code: "abc"})
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))
}

func TestCallback_Invalid(t *testing.T) {
	uc := newUsecase(t, &memState{states: map[string]time.Duration{}}, fakeGitHub{})

	_, err := uc.Callback(context.Background(), CallbackInput{State: "st-1"})
	assert.True(t, goerror.HasCode(err, goerror.CodeInvalidInput))
}

func TestCallback_GitHubErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code goerror.Code
	}{
		{"rejected", fmt.Errorf("%w: bad_verification_code", entity.ErrGitHubRejected), goerror.CodeUnauthorized},
		{"down", errors.New("dial tcp: refused"), goerror.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &memState{states: map[string]time.Duration{"st-1": time.Minute}}
			uc := newUsecase(t, st, fakeGitHub{err: tt.err})

			_, err := uc.Callback(context.Background(), CallbackInput{State: "st-1", Code: "abc"})
			assert.True(t, goerror.HasCode(err, tt.code))
		})
	}
}

func TestLogin_StateStoreDown(t *testing.T) {
	uc := newUsecase(t, &memState{err: errors.New("redis down")}, fakeGitHub{})

	_, err := uc.Login(context.Background())
	assert.True(t, goerror.HasCode(err, goerror.CodeInternal))
}

func TestHello(t *testing.T) {
	uc := newUsecase(t, &memState{}, fakeGitHub{})

	assert.Equal(t, HelloOutput{LoginURL: "https://mailanes.test/login", Version: "1.2.3"}, uc.Hello(context.Background()))
}
