package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueseamans/mailanes/internal/pkg/config"
)

func TestSendLock(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		lock  time.Duration
		stale time.Duration
	}{
		{
			name:  "defaults",
			yaml:  "app:\n  name: mailanes\n",
			lock:  defaultMailTimeout,
			stale: defaultMailTimeout + staleMargin,
		},
		{
			name: "retries with backoff",
			yaml: "mail:\n  timeout_seconds: 10\nmodules:\n  delivery:\n    send_retries: 2\n    send_backoff_ms: 500\n",
			// three tries plus 500ms and 1s between them
			lock:  31500 * time.Millisecond,
			stale: 31500*time.Millisecond + staleMargin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewViperFromBytes("yaml", []byte(tt.yaml))
			require.NoError(t, err)
			t.Cleanup(func() { _ = cfg.Close() })

			s := &Usecase{cfg: cfg}
			assert.Equal(t, tt.lock, s.sendLock())
			assert.Equal(t, tt.stale, s.staleAfter())
		})
	}
}
