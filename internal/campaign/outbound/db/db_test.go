package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/blueseamans/mailanes/internal/campaign/entity"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
)

func newDB(t *testing.T) *DB {
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

	return NewDB(pool, instrument.NewNoop())
}

func TestDB_OwnerScope(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateList(ctx, entity.List{ID: 10, Owner: "yegor256", Title: "Friends"}))
	require.NoError(t, db.CreateLane(ctx, entity.Lane{ID: 20, Owner: "yegor256", Title: "Onboarding"}))
	require.NoError(t, db.CreateRecipient(ctx, entity.Recipient{ID: 30, List: 10, Email: "jeff@example.com", Source: "@yegor256", Active: true}))
	_, err := db.CreateLetter(ctx, entity.Letter{ID: 40, Lane: 20, Title: "First"})
	require.NoError(t, err)
	require.NoError(t, db.CreateCampaign(ctx, entity.Campaign{ID: 50, List: 10, Lane: 20, YAML: "title: Spring"}))

	r, err := db.GetRecipient(ctx, 30, "yegor256")
	require.NoError(t, err)
	assert.Equal(t, "jeff@example.com", r.Email)
	_, err = db.GetRecipient(ctx, 30, "walter")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	l, err := db.GetLetter(ctx, 40, "yegor256")
	require.NoError(t, err)
	assert.Equal(t, "First", l.Title)
	_, err = db.GetLetter(ctx, 40, "walter")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	c, err := db.GetCampaign(ctx, 50, "yegor256")
	require.NoError(t, err)
	assert.Equal(t, "Friends", c.ListTitle)
	assert.Equal(t, "Onboarding", c.LaneTitle)
	assert.False(t, c.Active)
	_, err = db.GetCampaign(ctx, 50, "walter")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	_, err = db.GetList(ctx, 10, "walter")
	assert.ErrorIs(t, err, goerror.ErrNotFound)
	_, err = db.GetLane(ctx, 20, "walter")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	campaigns, err := db.ListCampaigns(ctx, "walter")
	require.NoError(t, err)
	assert.Empty(t, campaigns)
	lists, err := db.ListLists(ctx, "yegor256")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, int64(1), lists[0].Recipients)

	err = db.CreateCampaign(ctx, entity.Campaign{ID: 52, List: 10, Lane: 999})
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestDB_Recipients(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateList(ctx, entity.List{ID: 10, Owner: "yegor256", Title: "Friends"}))
	require.NoError(t, db.CreateRecipient(ctx, entity.Recipient{ID: 30, List: 10, Email: "jeff@example.com", Active: true}))

	err := db.CreateRecipient(ctx, entity.Recipient{ID: 31, List: 10, Email: "jeff@example.com", Active: true})
	assert.ErrorIs(t, err, goerror.ErrConflict)

	created, err := db.ImportRecipients(ctx, []entity.Recipient{
		{ID: 32, List: 10, Email: "jeff@example.com", Active: true},
		{ID: 33, List: 10, Email: "walter@example.com", First: "Walter", Active: true},
		{ID: 34, List: 10, Email: "donny@example.com", Active: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	page, err := db.ListRecipients(ctx, 10, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "walter@example.com", page[0].Email)
	assert.Equal(t, "Walter", page[0].First)

	all, err := db.ListAllRecipients(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, db.UpdateRecipientYAML(ctx, 30, "city: Lviv"))
	assert.ErrorIs(t, db.UpdateRecipientYAML(ctx, 999, "city: Lviv"), goerror.ErrNotFound)

	active, err := db.ToggleRecipient(ctx, 30)
	require.NoError(t, err)
	assert.False(t, active)
	active, err = db.ToggleRecipient(ctx, 30)
	require.NoError(t, err)
	assert.True(t, active)
	_, err = db.ToggleRecipient(ctx, 999)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	was, err := db.DeactivateRecipient(ctx, 30)
	require.NoError(t, err)
	assert.True(t, was)
	was, err = db.DeactivateRecipient(ctx, 30)
	require.NoError(t, err)
	assert.False(t, was)

	r, err := db.GetRecipient(ctx, 30, "yegor256")
	require.NoError(t, err)
	assert.Equal(t, "city: Lviv", r.YAML)
	assert.False(t, r.Active)
}

func TestDB_LettersAndToggles(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateList(ctx, entity.List{ID: 10, Owner: "yegor256", Title: "Friends"}))
	require.NoError(t, db.CreateLane(ctx, entity.Lane{ID: 20, Owner: "yegor256", Title: "Onboarding"}))
	require.NoError(t, db.CreateLane(ctx, entity.Lane{ID: 21, Owner: "yegor256", Title: "Other"}))

	for i, want := range []int32{1, 2, 3} {
		place, err := db.CreateLetter(ctx, entity.Letter{ID: int64(40 + i), Lane: 20, Title: "L"})
		require.NoError(t, err)
		assert.Equal(t, want, place)
	}
	place, err := db.CreateLetter(ctx, entity.Letter{ID: 45, Lane: 21, Title: "M"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), place)

	lane, err := db.GetLane(ctx, 20, "yegor256")
	require.NoError(t, err)
	require.Len(t, lane.Letters, 3)
	assert.Equal(t, int64(40), lane.Letters[0].ID)
	assert.False(t, lane.Letters[0].Active)

	require.NoError(t, db.UpdateLetter(ctx, 40, "Hi {{ recipient.first }}", "subject: Hello"))
	assert.ErrorIs(t, db.UpdateLetter(ctx, 999, "", ""), goerror.ErrNotFound)

	active, err := db.ToggleLetter(ctx, 40)
	require.NoError(t, err)
	assert.True(t, active)

	l, err := db.GetLetter(ctx, 40, "yegor256")
	require.NoError(t, err)
	assert.Equal(t, "Hi {{ recipient.first }}", l.Liquid)
	assert.Equal(t, "subject: Hello", l.YAML)
	assert.True(t, l.Active)

	require.NoError(t, db.CreateCampaign(ctx, entity.Campaign{ID: 50, List: 10, Lane: 20}))
	require.NoError(t, db.UpdateCampaignYAML(ctx, 50, "title: Autumn"))
	assert.ErrorIs(t, db.UpdateCampaignYAML(ctx, 999, ""), goerror.ErrNotFound)

	active, err = db.ToggleCampaign(ctx, 50)
	require.NoError(t, err)
	assert.True(t, active)
	active, err = db.ToggleCampaign(ctx, 50)
	require.NoError(t, err)
	assert.False(t, active)
	_, err = db.ToggleCampaign(ctx, 999)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	c, err := db.GetCampaign(ctx, 50, "yegor256")
	require.NoError(t, err)
	assert.Equal(t, "title: Autumn", c.YAML)
}
