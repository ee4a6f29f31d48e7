package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
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

func TestRedis_Exec(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	r := NewRedis(client)

	calls := 0
	fn := func(context.Context) error {
		calls++
		return nil
	}

	require.NoError(t, r.Exec(ctx, "delivery:10", fn, WithStateTTL(time.Hour)))
	assert.ErrorIs(t, r.Exec(ctx, "delivery:10", fn), ErrAlreadyCompleted)
	assert.Equal(t, 1, calls)

	state, err := client.Get(ctx, "idempotency:delivery:10").Result()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted.String(), state)
}

func TestRedis_RetryableFailure(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	r := NewRedis(client)

	err := r.Exec(ctx, "delivery:11", func(context.Context) error { return errors.New("down") }, WithRetryableFailure())
	require.Error(t, err)

	n, err := client.Exists(ctx, "idempotency:delivery:11").Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedis_InvalidState(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "idempotency:delivery:12", "garbage", time.Minute).Err())

	err := NewRedis(client).Exec(ctx, "delivery:12", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidState)
}
