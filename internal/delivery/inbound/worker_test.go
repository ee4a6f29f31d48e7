package inbound

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
)

type passes struct {
	mu       sync.Mutex
	calls    []string
	cids     []string
	fetchErr error
}

func (p *passes) record(ctx context.Context, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, name)
	p.cids = append(p.cids, instrument.GetCorrelationID(ctx))
}

func (p *passes) Fetch(ctx context.Context) (*entity.FetchResult, error) {
	p.record(ctx, "fetch")
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return &entity.FetchResult{Campaigns: 1, Sent: 2}, nil
}

func (p *passes) Retry(ctx context.Context) (*entity.FetchResult, error) {
	p.record(ctx, "retry")
	return &entity.FetchResult{}, nil
}

func (p *passes) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func TestWorker_Tick(t *testing.T) {
	p := &passes{}
	w := &Worker{uc: p, uuid: staticID{}, interval: time.Minute}

	w.Tick(context.Background())
	assert.Equal(t, []string{"fetch", "retry"}, p.calls)
	assert.Equal(t, []string{"cid", "cid"}, p.cids)
}

func TestWorker_Tick_FetchFailureStillRetries(t *testing.T) {
	p := &passes{fetchErr: errors.New("db down")}
	w := &Worker{uc: p, uuid: staticID{}, interval: time.Minute}

	w.Tick(context.Background())
	assert.Equal(t, []string{"fetch", "retry"}, p.calls)
}

func TestWorker_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &passes{}
	w := &Worker{uc: p, uuid: staticID{}, interval: 5 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	assert.Eventually(t, func() bool { return p.count() >= 4 }, time.Second, time.Millisecond)
	cancel()
	<-done
}

func TestNewWorker_Interval(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  delivery:\n    fetch_interval_seconds: 30\n"))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, NewWorker(cfg, staticID{}, &passes{}).interval)

	cfg, err = config.NewViperFromBytes("yaml", []byte("app:\n  name: mailanes\n"))
	require.NoError(t, err)
	assert.Equal(t, defaultFetchInterval, NewWorker(cfg, staticID{}, &passes{}).interval)
}
