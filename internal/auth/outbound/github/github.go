package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	ghoauth "golang.org/x/oauth2/github"

	"github.com/blueseamans/mailanes/internal/auth/entity"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
)

const defaultAPIURL = "https://api.github.com"

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// AuthURL and TokenURL replace the github.com endpoint, for GitHub
	// Enterprise or a local stub.
	AuthURL  string
	TokenURL string
	APIURL   string
	// HTTPClient is used for the token exchange and the API call when set.
	HTTPClient *http.Client
}

type GitHub struct {
	oauth  *oauth2.Config
	apiURL string
	client *http.Client
	ins    instrument.Instrumentation
}

func New(cfg Config, ins instrument.Instrumentation) *GitHub {
	endpoint := ghoauth.Endpoint
	if cfg.AuthURL != "" && cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{
			AuthURL:   cfg.AuthURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		}
	}

	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &GitHub{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"read:user"},
		},
		apiURL: apiURL,
		client: cfg.HTTPClient,
		ins:    ins,
	}
}

func (g *GitHub) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return g.ins.Tracer("auth.outbound.github").Start(ctx, name)
}

func (g *GitHub) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (g *GitHub) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

type githubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (g *GitHub) User(ctx context.Context, code string) (_ *entity.User, err error) {
	ctx, span := g.startSpan(ctx, "User")
	defer func() { g.endSpan(span, err) }()

	if g.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.client)
	}

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, fmt.Errorf("%w: %w", entity.ErrGitHubRejected, err)
		}
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: user api answered %s", entity.ErrGitHubRejected, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("github: user api answered %s", resp.Status)
	}

	var gu githubUser
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&gu); err != nil {
		return nil, fmt.Errorf("github: decode user: %w", err)
	}
	if gu.Login == "" {
		return nil, fmt.Errorf("%w: user without login", entity.ErrGitHubRejected)
	}

	return &entity.User{Login: gu.Login, Name: gu.Name, AvatarURL: gu.AvatarURL}, nil
}
