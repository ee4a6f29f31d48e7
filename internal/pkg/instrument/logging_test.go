package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestHandler_AddsCorrelationAndService(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newHandler(buf, &Config{ServiceName: "mailanes"}, nil))

	ctx := SetCorrelationID(context.Background(), "abc-123")
	logger.InfoContext(ctx, "hello")

	line := decodeLine(t, buf)
	assert.Equal(t, "abc-123", line["_cID"])
	assert.Equal(t, "mailanes", line["service"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Contains(t, line, "ts")
	assert.Contains(t, line["file"], "internal/pkg/instrument/logging_test.go:")
}

func TestHandler_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newHandler(buf, &Config{LogLevel: "warn"}, nil))

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestHandler_Masks(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newHandler(buf, &Config{MaskFields: []string{"Token", " client_secret "}}, nil))

	logger.Info("masked",
		"token", "t0p",
		"body", map[string]any{"client_secret": "s3", "login": "octo"},
		slog.Group("oauth", slog.String("token", "x")),
	)

	line := decodeLine(t, buf)
	assert.Equal(t, "***", line["token"])
	assert.Equal(t, map[string]any{"client_secret": "***", "login": "octo"}, line["body"])
	assert.Equal(t, map[string]any{"token": "***"}, line["oauth"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "x", GetCorrelationID(SetCorrelationID(context.Background(), "x")))
}

func TestNew_Disabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)
	assert.NotNil(t, ins.Tracer("x"))
	assert.NoError(t, ins.Shutdown(context.Background()))
}
