package usecase

import (
	"context"
	"strings"
)

type HelloOutput struct {
	LoginURL string
	Version  string
}

func (s *Usecase) Hello(ctx context.Context) HelloOutput {
	_, span := s.startSpan(ctx, "Hello")
	defer span.End()

	return HelloOutput{
		LoginURL: strings.TrimRight(s.cfg.GetString("app.base_url"), "/") + "/login",
		Version:  s.Version(),
	}
}

func (s *Usecase) Version() string {
	if v := s.cfg.GetString("app.version"); v != "" {
		return v
	}
	return "0.0.0"
}
