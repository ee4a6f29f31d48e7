package usecase

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueseamans/mailanes/internal/delivery/entity"
	"github.com/blueseamans/mailanes/internal/pkg/clock"
	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goerror"
	"github.com/blueseamans/mailanes/internal/pkg/idempotency"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/jwt"
	"github.com/blueseamans/mailanes/internal/pkg/postman"
	"github.com/blueseamans/mailanes/internal/pkg/secret"
	"github.com/blueseamans/mailanes/internal/pkg/validator"
	"github.com/blueseamans/mailanes/internal/pkg/valueobject"
)

const testConfig = `
app:
  base_url: https://mailanes.test/
modules:
  delivery:
    default_speed: 10
    max_attempts: 3
    send_retries: 0
    retry_after_seconds: 3600
`

var testNow = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type fakeRecipient struct {
	entity.Recipient
	list    int64
	active  bool
	created time.Time
}

type fakeLetter struct {
	entity.Letter
	lane   int64
	place  int32
	active bool
}

type fakeDelivery struct {
	id, campaign, recipient, letter int64
	status                          entity.Status
	attempts                        int32
	created                         time.Time
	updated                         time.Time
	nextRetryAt                     time.Time
	details                         valueobject.JSONMap
}

// fakeDB keeps the pipeline tables in memory and mirrors the SQL queries.
type fakeDB struct {
	mu         sync.Mutex
	clock      clock.Clocker
	campaigns  map[int64]*entity.Campaign
	recipients []*fakeRecipient
	letters    []*fakeLetter
	deliveries []*fakeDelivery
	// markSentErr makes the next MarkSent fail once.
	markSentErr error
}

func newFakeDB(clk clock.Clocker) *fakeDB {
	return &fakeDB{clock: clk, campaigns: map[int64]*entity.Campaign{}}
}

func (f *fakeDB) ListActiveCampaigns(context.Context) ([]entity.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.Campaign
	for _, c := range f.campaigns {
		if c.Active {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b entity.Campaign) int { return int(a.ID - b.ID) })
	return out, nil
}

func (f *fakeDB) GetActiveCampaign(_ context.Context, id int64) (*entity.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[id]
	if !ok || !c.Active {
		return nil, goerror.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeDB) GetCampaign(_ context.Context, id int64, owner string) (*entity.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[id]
	if !ok || c.Owner != owner {
		return nil, goerror.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeDB) CountDeliveriesSince(_ context.Context, campaign int64, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, d := range f.deliveries {
		if d.campaign == campaign && d.created.After(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeDB) delivered(recipient, letter int64) bool {
	return slices.ContainsFunc(f.deliveries, func(d *fakeDelivery) bool {
		return d.recipient == recipient && d.letter == letter
	})
}

func (f *fakeDB) ListCandidates(_ context.Context, c entity.Campaign, after int64, limit int32) ([]entity.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.Candidate
	for _, r := range f.recipients {
		if r.list != c.List || !r.active || r.ID <= after {
			continue
		}

		var next *fakeLetter
		for _, l := range f.letters {
			if l.lane != c.Lane || !l.active || f.delivered(r.ID, l.ID) {
				continue
			}
			if next == nil || l.place < next.place {
				next = l
			}
		}
		if next == nil {
			continue
		}

		since := r.created
		for _, d := range f.deliveries {
			if d.campaign == c.ID && d.recipient == r.ID && d.created.After(since) {
				since = d.created
			}
		}

		out = append(out, entity.Candidate{Recipient: r.Recipient, Letter: next.Letter, Since: since})
		if int32(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDB) CreateDelivery(_ context.Context, id, campaign, recipient, letter int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.delivered(recipient, letter) {
		return false, nil
	}
	f.deliveries = append(f.deliveries, &fakeDelivery{
		id:        id,
		campaign:  campaign,
		recipient: recipient,
		letter:    letter,
		status:    entity.StatusQueued,
		created:   f.clock.Now(),
		updated:   f.clock.Now(),
	})
	return true, nil
}

func (f *fakeDB) find(id int64) *fakeDelivery {
	for _, d := range f.deliveries {
		if d.id == id {
			return d
		}
	}
	return nil
}

func (f *fakeDB) MarkSent(_ context.Context, id int64, details valueobject.JSONMap) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.markSentErr; err != nil {
		f.markSentErr = nil
		return err
	}

	d := f.find(id)
	d.status, d.details = entity.StatusSent, details
	d.attempts++
	d.nextRetryAt = time.Time{}
	d.updated = f.clock.Now()
	return nil
}

func (f *fakeDB) MarkFailed(_ context.Context, id int64, nextRetryAt time.Time, details valueobject.JSONMap) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.find(id)
	d.status, d.details, d.nextRetryAt = entity.StatusFailed, details, nextRetryAt
	d.attempts++
	d.updated = f.clock.Now()
	return nil
}

func retryable(d *fakeDelivery, now, staleBefore time.Time) bool {
	switch d.status {
	case entity.StatusFailed:
		return !d.nextRetryAt.After(now)
	case entity.StatusQueued, entity.StatusRetry:
		return d.updated.Before(staleBefore)
	default:
		return false
	}
}

func (f *fakeDB) ListRetryable(_ context.Context, now, staleBefore time.Time, maxAttempts, limit int32) ([]entity.Retryable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.Retryable
	for _, d := range f.deliveries {
		if !retryable(d, now, staleBefore) || d.attempts >= maxAttempts {
			continue
		}
		c := f.campaigns[d.campaign]
		r := f.recipients[slices.IndexFunc(f.recipients, func(r *fakeRecipient) bool { return r.ID == d.recipient })]
		l := f.letters[slices.IndexFunc(f.letters, func(l *fakeLetter) bool { return l.ID == d.letter })]
		if !c.Active || !r.active {
			continue
		}
		out = append(out, entity.Retryable{
			ID:        d.id,
			Campaign:  entity.Campaign{ID: c.ID, YAML: c.YAML, Active: true},
			Attempts:  d.attempts,
			Recipient: r.Recipient,
			Letter:    l.Letter,
		})
		if int32(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDB) ClaimRetry(_ context.Context, id int64, staleBefore time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.find(id)
	if d == nil {
		return false, nil
	}
	stale := (d.status == entity.StatusQueued || d.status == entity.StatusRetry) && d.updated.Before(staleBefore)
	if d.status != entity.StatusFailed && !stale {
		return false, nil
	}
	d.status = entity.StatusRetry
	d.updated = f.clock.Now()
	return true, nil
}

func (f *fakeDB) ReleaseRetry(_ context.Context, id int64, nextRetryAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.find(id)
	if d != nil && (d.status == entity.StatusQueued || d.status == entity.StatusRetry) {
		d.status, d.nextRetryAt = entity.StatusFailed, nextRetryAt
		d.updated = f.clock.Now()
	}
	return nil
}

func (f *fakeDB) ListDeliveries(_ context.Context, campaign int64, limit int32) ([]entity.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.Delivery
	for i := len(f.deliveries) - 1; i >= 0 && int32(len(out)) < limit; i-- {
		d := f.deliveries[i]
		if d.campaign != campaign {
			continue
		}
		r := f.recipients[slices.IndexFunc(f.recipients, func(r *fakeRecipient) bool { return r.ID == d.recipient })]
		l := f.letters[slices.IndexFunc(f.letters, func(l *fakeLetter) bool { return l.ID == d.letter })]
		out = append(out, entity.Delivery{
			ID:          d.id,
			Email:       r.Email,
			LetterTitle: l.Title,
			Status:      d.status,
			Attempts:    d.attempts,
			Created:     d.created,
		})
	}
	return out, nil
}

func (f *fakeDB) CountByStatus(_ context.Context, campaign int64) (map[entity.Status]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[entity.Status]int64{}
	for _, d := range f.deliveries {
		if d.campaign == campaign {
			out[d.status]++
		}
	}
	return out, nil
}

type fakeMessaging struct {
	events []RecipientUnsubscribedEvent
	err    error
}

func (f *fakeMessaging) PublishRecipientUnsubscribed(_ context.Context, msg RecipientUnsubscribedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, msg)
	return nil
}

type fixture struct {
	uc      *Usecase
	db      *fakeDB
	mq      *fakeMessaging
	postman *postman.Fake
	idemp   *idempotency.Memory
	clock   *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	sealer, err := secret.NewAESGCM("test-encryption-material")
	require.NoError(t, err)

	clk := clock.NewFixed(testNow)
	f := &fixture{
		db:      newFakeDB(clk),
		mq:      &fakeMessaging{},
		postman: postman.NewFake("bot@mailanes.test"),
		idemp:   idempotency.NewMemory(clk),
		clock:   clk,
	}
	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.mq,
		RepoMail:      f.postman,
		Idempotency:   f.idemp,
		Sealer:        sealer,
		Validator:     v,
		Config:        cfg,
		UID:           &seqID{},
		Clock:         clk,
		Instrument:    instrument.NewNoop(),
	})
	return f
}

const (
	owner      = "yegor256"
	campaignID = int64(7001)
	listID     = int64(7002)
	laneID     = int64(7003)
)

func (f *fixture) campaign(yaml string, active bool) {
	f.db.campaigns[campaignID] = &entity.Campaign{
		ID:     campaignID,
		List:   listID,
		Lane:   laneID,
		Owner:  owner,
		YAML:   yaml,
		Active: active,
	}
}

func (f *fixture) recipient(id int64, email, first, yaml string, age time.Duration) {
	f.db.recipients = append(f.db.recipients, &fakeRecipient{
		Recipient: entity.Recipient{ID: id, Email: email, First: first, YAML: yaml},
		list:      listID,
		active:    true,
		created:   testNow.Add(-age),
	})
}

func (f *fixture) letter(id int64, place int32, title, liquid, yaml string, active bool) {
	f.db.letters = append(f.db.letters, &fakeLetter{
		Letter: entity.Letter{ID: id, Title: title, Liquid: liquid, YAML: yaml},
		lane:   laneID,
		place:  place,
		active: active,
	})
}

func authed() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{Login: owner})
}

func TestFetch_OneRecipientOneLetter(t *testing.T) {
	f := newFixture(t)
	f.campaign("title: Spring", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi {{ recipient.first }}!", "", true)

	res, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Campaigns)
	assert.Equal(t, 1, res.Sent)

	rep, err := f.uc.Report(authed(), ReportInput{Campaign: campaignID})
	require.NoError(t, err)
	require.Len(t, rep.Deliveries, 1)
	assert.Equal(t, "jeff@example.com", rep.Deliveries[0].Email)
	assert.Equal(t, "Welcome", rep.Deliveries[0].LetterTitle)
	assert.Equal(t, entity.StatusSent, rep.Deliveries[0].Status)
	assert.Equal(t, int32(1), rep.Deliveries[0].Attempts)
	assert.Equal(t, map[entity.Status]int64{entity.StatusSent: 1}, rep.Counts)
	assert.Equal(t, "Spring", rep.Title)

	sent := f.postman.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jeff@example.com", sent[0].To)
	assert.Equal(t, "Welcome", sent[0].Subject)
	assert.Equal(t, "Hi Jeff!", sent[0].TextBody)
	assert.True(t, strings.HasPrefix(sent[0].Headers[headerListUnsubscribe], "<https://mailanes.test/unsubscribe?token="))

	res, err = f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)
	assert.Len(t, f.postman.Sent(), 1)
}

func TestFetch_InactiveCampaignOrLetter(t *testing.T) {
	f := newFixture(t)
	f.campaign("", false)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)

	res, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Campaigns)

	f.campaign("", true)
	f.db.letters[0].active = false

	res, err = f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)
	assert.Empty(t, f.postman.Sent())
}

func TestFetch_DelayInDays(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", 24*time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "delay: 2", true)

	res, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)

	f.clock.Advance(24 * time.Hour)

	res, err = f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestFetch_LettersFollowTheLane(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9002, 1, "Second", "Two", "delay: 1", true)
	f.letter(9001, 0, "First", "One", "", true)

	_, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)

	res, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)

	f.clock.Advance(25 * time.Hour)

	res, err = f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	sent := f.postman.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "One", sent[0].TextBody)
	assert.Equal(t, "Two", sent[1].TextBody)
}

func TestFetch_Speed(t *testing.T) {
	f := newFixture(t)
	f.campaign("speed: 2", true)
	f.letter(9001, 0, "Welcome", "Hi", "", true)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		f.recipient(int64(8001+i), email, "", "", time.Hour)
	}

	res, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)

	res, err = f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)

	f.clock.Advance(24 * time.Hour)

	res, err = f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestFetch_RenderBindings(t *testing.T) {
	f := newFixture(t)
	f.campaign("title: Spring\nfrom: news@mailanes.test", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "city: Lviv\nfirst: ignored", time.Hour)
	f.letter(9001, 0, "Welcome", "{{ recipient.first }} from {{ recipient.city }} reads {{ campaign.title }}/{{ letter.title }}",
		"subject: Hello {{ recipient.first }}", true)

	_, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)

	sent := f.postman.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Jeff from Lviv reads Spring/Welcome", sent[0].TextBody)
	assert.Equal(t, "Hello Jeff", sent[0].Subject)
	assert.Equal(t, "news@mailanes.test", sent[0].From)
}

func TestFetch_FailureThenRetry(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)

	f.postman.Fail(errors.New("smtp: 421 try later"))

	res, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)

	d := f.db.deliveries[0]
	assert.Equal(t, entity.StatusFailed, d.status)
	assert.Equal(t, int32(1), d.attempts)
	assert.Equal(t, testNow.Add(time.Hour), d.nextRetryAt)
	assert.Contains(t, d.details["error"], "421")

	f.postman.Fail(nil)

	res, err = f.uc.Retry(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)

	f.clock.Advance(time.Hour)

	res, err = f.uc.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, entity.StatusSent, d.status)
	assert.Equal(t, int32(2), d.attempts)
	assert.Len(t, f.postman.Sent(), 1)
}

func TestRetry_StopsAtMaxAttempts(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)
	f.postman.Fail(errors.New("smtp down"))

	_, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)

	for range 4 {
		f.clock.Advance(time.Hour)
		_, err := f.uc.Retry(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), f.db.deliveries[0].attempts)
	assert.Equal(t, entity.StatusFailed, f.db.deliveries[0].status)
}

func TestRetry_ReleasesDeliveryHeldElsewhere(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)
	f.postman.Fail(errors.New("smtp: 421 try later"))

	_, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	f.postman.Fail(nil)
	f.clock.Advance(time.Hour)

	d := f.db.deliveries[0]
	errStopped := errors.New("worker stopped")

	var res *entity.FetchResult
	err = f.idemp.Exec(context.Background(), "delivery:"+strconv.FormatInt(d.id, 10), func(ctx context.Context) error {
		var err error
		res, err = f.uc.Retry(ctx)
		require.NoError(t, err)
		return errStopped
	}, idempotency.WithRetryableFailure())
	require.ErrorIs(t, err, errStopped)

	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, entity.StatusFailed, d.status)
	assert.Equal(t, int32(1), d.attempts)
	assert.Empty(t, f.postman.Sent())

	f.clock.Advance(time.Minute)

	res, err = f.uc.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, entity.StatusSent, d.status)
	assert.Equal(t, int32(2), d.attempts)
	assert.Len(t, f.postman.Sent(), 1)
}

func TestRetry_RecoversUnmarkedDelivery(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)
	f.db.markSentErr = errors.New("connection reset")

	_, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)

	d := f.db.deliveries[0]
	assert.Equal(t, entity.StatusQueued, d.status)
	require.Len(t, f.postman.Sent(), 1)

	res, err := f.uc.Retry(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)

	f.clock.Advance(2 * time.Minute)

	res, err = f.uc.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, entity.StatusSent, d.status)
	assert.Equal(t, true, d.details["recovered"])
	assert.Len(t, f.postman.Sent(), 1)
}

func TestRetry_TakesOverStaleClaim(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)
	f.postman.Fail(errors.New("smtp down"))

	_, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)
	f.postman.Fail(nil)

	d := f.db.deliveries[0]
	d.status, d.updated = entity.StatusRetry, testNow

	f.clock.Advance(time.Minute)

	res, err := f.uc.Retry(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Sent)
	assert.Equal(t, entity.StatusRetry, d.status)

	f.clock.Advance(time.Minute)

	res, err = f.uc.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, entity.StatusSent, d.status)
}

func TestUnsubscribe(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Bye: {{ unsubscribe_url }}", "", true)

	_, err := f.uc.Fetch(context.Background())
	require.NoError(t, err)

	sent := f.postman.Sent()
	require.Len(t, sent, 1)

	link := strings.TrimPrefix(sent[0].TextBody, "Bye: ")
	u, err := url.Parse(link)
	require.NoError(t, err)

	require.NoError(t, f.uc.Unsubscribe(context.Background(), UnsubscribeInput{Token: u.Query().Get("token")}))
	require.Len(t, f.mq.events, 1)
	assert.Equal(t, int64(8001), f.mq.events[0].RecipientID)
	assert.Equal(t, f.db.deliveries[0].id, f.mq.events[0].DeliveryID)
}

func TestUnsubscribe_InvalidToken(t *testing.T) {
	f := newFixture(t)

	for _, token := range []string{"", "garbage", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"} {
		err := f.uc.Unsubscribe(context.Background(), UnsubscribeInput{Token: token})
		assert.True(t, goerror.HasCode(err, goerror.CodeInvalidFormat), token)
	}
	assert.Empty(t, f.mq.events)

	other, err := secret.NewAESGCM("another-material")
	require.NoError(t, err)
	forged, err := secret.SealToken(other, []byte("8001:1"), purposeUnsubscribe)
	require.NoError(t, err)

	err = f.uc.Unsubscribe(context.Background(), UnsubscribeInput{Token: forged})
	assert.True(t, goerror.HasCode(err, goerror.CodeInvalidFormat))
}

func TestReport_OwnerScoped(t *testing.T) {
	f := newFixture(t)
	f.campaign("", true)

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{Login: "stranger"})
	_, err := f.uc.Report(ctx, ReportInput{Campaign: campaignID})
	assert.True(t, goerror.HasCode(err, goerror.CodeNotFound))

	_, err = f.uc.Report(context.Background(), ReportInput{Campaign: campaignID})
	assert.True(t, goerror.HasCode(err, goerror.CodeUnauthorized))
}

func TestFetchCampaign(t *testing.T) {
	f := newFixture(t)
	f.campaign("", false)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)

	_, err := f.uc.FetchCampaign(authed(), FetchCampaignInput{ID: campaignID})
	assert.True(t, goerror.HasCode(err, goerror.CodeConflict))

	f.campaign("", true)

	res, err := f.uc.FetchCampaign(authed(), FetchCampaignInput{ID: campaignID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestConsumeCampaignActivated(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.ConsumeCampaignActivated(context.Background(), ConsumeCampaignActivatedInput{CampaignID: campaignID}))

	f.campaign("", true)
	f.recipient(8001, "jeff@example.com", "Jeff", "", time.Hour)
	f.letter(9001, 0, "Welcome", "Hi", "", true)

	require.NoError(t, f.uc.ConsumeCampaignActivated(context.Background(), ConsumeCampaignActivatedInput{CampaignID: campaignID}))
	assert.Len(t, f.postman.Sent(), 1)
}
