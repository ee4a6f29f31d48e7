package state

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/blueseamans/mailanes/internal/pkg/instrument"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis_ConsumeOnce(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	r := NewRedis(client, instrument.NewNoop())

	require.NoError(t, r.Save(ctx, "st-1", time.Minute))

	ttl, err := client.TTL(ctx, "auth:state:st-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	ok, err := r.Consume(ctx, "st-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Consume(ctx, "st-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_ConsumeUnknown(t *testing.T) {
	r := NewRedis(newRedisClient(t), instrument.NewNoop())

	ok, err := r.Consume(context.Background(), "never-saved")
	require.NoError(t, err)
	assert.False(t, ok)
}
