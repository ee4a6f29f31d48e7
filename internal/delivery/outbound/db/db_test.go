package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/valueobject"
)

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("mailanes"),
		tcpostgres.WithUsername("mailanes"),
		tcpostgres.WithPassword("mailanes"),
		tcpostgres.WithInitScripts(filepath.Join("..", "..", "..", "..", "db", "migrations", "000001_init.up.sql")),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

const seed = `
INSERT INTO lists (id, owner, title) VALUES (10, 'yegor256', 'Friends');
INSERT INTO lanes (id, owner, title) VALUES (20, 'yegor256', 'Onboarding');
INSERT INTO recipients (id, list, email, first, yaml, created) VALUES
    (30, 10, 'jeff@example.com', 'Jeff', 'city: Lviv', NOW() - INTERVAL '2 days'),
    (31, 10, 'anna@example.com', 'Anna', '', NOW() - INTERVAL '1 day');
INSERT INTO recipients (id, list, email, active) VALUES (32, 10, 'gone@example.com', FALSE);
INSERT INTO letters (id, lane, place, title, liquid, active) VALUES
    (41, 20, 1, 'Second', 'Two', TRUE),
    (40, 20, 0, 'First', 'One', TRUE),
    (42, 20, 2, 'Draft', 'Three', FALSE);
INSERT INTO campaigns (id, list, lane, yaml, active) VALUES (50, 10, 20, 'title: Spring', TRUE);
`

func TestDB_Pipeline(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, seed)
	require.NoError(t, err)

	db := NewDB(pool, instrument.NewNoop())

	campaigns, err := db.ListActiveCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	c := campaigns[0]
	assert.Equal(t, entity.Campaign{ID: 50, List: 10, Lane: 20, Owner: "yegor256", YAML: "title: Spring", Active: true}, c)

	_, err = db.GetCampaign(ctx, 50, "stranger")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	candidates, err := db.ListCandidates(ctx, c, 0, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, int64(30), candidates[0].Recipient.ID)
	assert.Equal(t, "city: Lviv", candidates[0].Recipient.YAML)
	assert.Equal(t, int64(40), candidates[0].Letter.ID)

	created, err := db.CreateDelivery(ctx, 60, 50, 30, 40)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = db.CreateDelivery(ctx, 61, 50, 30, 40)
	require.NoError(t, err)
	assert.False(t, created)

	candidates, err = db.ListCandidates(ctx, c, 30, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(31), candidates[0].Recipient.ID)

	candidates, err = db.ListCandidates(ctx, c, 0, 1)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(41), candidates[0].Letter.ID)
	assert.WithinDuration(t, time.Now(), candidates[0].Since, time.Minute)

	total, err := db.CountDeliveriesSince(ctx, 50, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDB_FailRetrySend(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, seed)
	require.NoError(t, err)

	db := NewDB(pool, instrument.NewNoop())

	_, err = db.CreateDelivery(ctx, 60, 50, 30, 40)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, db.MarkFailed(ctx, 60, now.Add(-time.Second), valueobject.JSONMap{"error": "421"}))

	fresh := now.Add(-time.Hour)
	items, err := db.ListRetryable(ctx, now, fresh, 3, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int32(1), items[0].Attempts)
	assert.Equal(t, "title: Spring", items[0].Campaign.YAML)
	assert.Equal(t, "One", items[0].Letter.Liquid)

	items, err = db.ListRetryable(ctx, now, fresh, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, items)

	claimed, err := db.ClaimRetry(ctx, 60, fresh)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = db.ClaimRetry(ctx, 60, fresh)
	require.NoError(t, err)
	assert.False(t, claimed)

	require.NoError(t, db.MarkSent(ctx, 60, valueobject.JSONMap{"to": "jeff@example.com"}))

	deliveries, err := db.ListDeliveries(ctx, 50, 10)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "jeff@example.com", deliveries[0].Email)
	assert.Equal(t, "First", deliveries[0].LetterTitle)
	assert.Equal(t, entity.StatusSent, deliveries[0].Status)
	assert.Equal(t, int32(2), deliveries[0].Attempts)

	counts, err := db.CountByStatus(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, map[entity.Status]int64{entity.StatusSent: 1}, counts)
}

func TestDB_StaleDeliveries(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, seed)
	require.NoError(t, err)

	db := NewDB(pool, instrument.NewNoop())

	_, err = db.CreateDelivery(ctx, 60, 50, 30, 40)
	require.NoError(t, err)

	now := time.Now()
	items, err := db.ListRetryable(ctx, now, now.Add(-time.Hour), 3, 10)
	require.NoError(t, err)
	assert.Empty(t, items)

	claimed, err := db.ClaimRetry(ctx, 60, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, claimed)

	stale := now.Add(time.Minute)
	items, err = db.ListRetryable(ctx, now, stale, 3, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(60), items[0].ID)

	claimed, err = db.ClaimRetry(ctx, 60, stale)
	require.NoError(t, err)
	assert.True(t, claimed)

	require.NoError(t, db.ReleaseRetry(ctx, 60, now.Add(-time.Second)))

	items, err = db.ListRetryable(ctx, now, now.Add(-time.Hour), 3, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Zero(t, items[0].Attempts)

	require.NoError(t, db.MarkSent(ctx, 60, valueobject.JSONMap{}))
	require.NoError(t, db.ReleaseRetry(ctx, 60, now))

	counts, err := db.CountByStatus(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, map[entity.Status]int64{entity.StatusSent: 1}, counts)
}
