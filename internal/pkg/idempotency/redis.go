package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps operation state in Redis under "idempotency:<key>".
type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client, prefix: "idempotency:"}
}

func (r *Redis) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	return run(ctx, r, key, fn, opts)
}

func (r *Redis) acquire(ctx context.Context, key string, lock time.Duration) (State, error) {
	fk := r.prefix + key

	ok, err := r.client.SetNX(ctx, fk, StateInProgress.String(), lock).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return StateNone, nil
	}

	current, err := r.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		ok, err = r.client.SetNX(ctx, fk, StateInProgress.String(), lock).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return StateNone, nil
		}
		return "", ErrInvalidState
	}
	if err != nil {
		return "", err
	}

	return parseState(current)
}

func (r *Redis) set(ctx context.Context, key string, state State, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, state.String(), ttl).Err()
}

func (r *Redis) release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
