package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces"
	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/models/events"
	"github.com/sheikh-saqib/spendlog/internal/period"
	"github.com/sheikh-saqib/spendlog/internal/storage/memory"
)

// clock is a settable "now" shared by the store and the ledger.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type fixture struct {
	ctx    context.Context
	clock  *clock
	store  *memory.MemoryLedgerStore
	ledger *Ledger
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	c := &clock{t: time.Date(2025, time.April, 23, 15, 0, 0, 0, time.UTC)}
	store := memory.NewMemoryLedgerStore(memory.WithClock(c.now))
	opts = append([]Option{WithClock(c.now)}, opts...)
	return &fixture{
		ctx:    context.Background(),
		clock:  c,
		store:  store,
		ledger: NewLedger(store, opts...),
	}
}

func (f *fixture) add(t *testing.T, code string, kind models.Kind) models.Ledger {
	t.Helper()
	l, err := f.ledger.AddLedger(f.ctx, models.Ledger{Code: code, Name: code + " ledger", Sort: "A", Kind: kind})
	require.NoError(t, err)
	return l
}

func (f *fixture) spend(t *testing.T, patron, outlay, amount, date string) models.Posting {
	t.Helper()
	p, err := f.ledger.Spend(f.ctx, SpendRequest{
		Patron:    patron,
		Outlay:    outlay,
		Amount:    decimal.RequireFromString(amount),
		Narration: "spent on " + outlay,
		Date:      date,
	})
	require.NoError(t, err)
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddLedger(t *testing.T) {
	f := newFixture(t)

	l, err := f.ledger.AddLedger(f.ctx, models.Ledger{Code: "CARD", Name: "Credit card", Sort: "L", Kind: "liability"})
	require.NoError(t, err)
	assert.Equal(t, models.Liability, l.Kind)

	got, err := f.ledger.Resolve(f.ctx, "CARD")
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)

	_, err = f.ledger.AddLedger(f.ctx, models.Ledger{Code: "CARD", Name: "Again", Sort: "L", Kind: models.Asset})
	assert.ErrorIs(t, err, ErrDuplicateLedger)

	for _, bad := range []models.Ledger{
		{Name: "No code", Sort: "A", Kind: models.Asset},
		{Code: "TOOLONGCODE", Name: "Long", Sort: "A", Kind: models.Asset},
		{Code: "X", Sort: "A", Kind: models.Asset},
		{Code: "X", Name: "No sort", Kind: models.Asset},
		{Code: "X", Name: "No kind", Sort: "A"},
		{Code: "X", Name: strings.Repeat("n", 101), Sort: "A", Kind: models.Asset},
		{Code: "X", Name: "Long sort", Sort: "ABCDEFGHIJK", Kind: models.Asset},
	} {
		_, err := f.ledger.AddLedger(f.ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidLedger, "%+v", bad)
	}

	// limits count characters, not bytes
	_, err = f.ledger.AddLedger(f.ctx, models.Ledger{Code: "ÉPARGNEÉÉ", Name: strings.Repeat("é", 100), Sort: "ÉÉÉÉÉÉÉÉÉÉ", Kind: models.Asset})
	require.NoError(t, err)

	ledgers, err := f.ledger.Ledgers(f.ctx)
	require.NoError(t, err)
	assert.Len(t, ledgers, 2)
}

func TestResolveUnknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.Resolve(f.ctx, "NOPE")
	assert.ErrorIs(t, err, ErrLedgerNotFound)
}

func TestSpendValidation(t *testing.T) {
	f := newFixture(t)
	f.add(t, "CASH", models.Asset)
	f.add(t, "FOOD", models.Expense)

	for _, tc := range []struct {
		name string
		req  SpendRequest
		want error
	}{
		{"zero amount", SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: decimal.Zero, Narration: "x"}, ErrInvalidAmount},
		{"negative amount", SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: dec("-5"), Narration: "x"}, ErrInvalidAmount},
		{"negative amount before unknown ledgers", SpendRequest{Patron: "NOPE", Outlay: "NOPE", Amount: dec("-5"), Narration: "x"}, ErrInvalidAmount},
		{"more than four decimals", SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: dec("12.34567"), Narration: "x"}, ErrInvalidAmount},
		{"rounds to zero", SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: dec("0.00001"), Narration: "x"}, ErrInvalidAmount},
		{"too many integer digits", SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: dec("10000000000000000"), Narration: "x"}, ErrInvalidAmount},
		{"no narration", SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: dec("5"), Narration: "  "}, ErrInvalidNarration},
		{"bad date", SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: dec("5"), Narration: "x", Date: "20/04/2025"}, period.ErrInvalidDate},
		{"unknown patron", SpendRequest{Patron: "NOPE", Outlay: "FOOD", Amount: dec("5"), Narration: "x"}, ErrLedgerNotFound},
		{"unknown outlay", SpendRequest{Patron: "CASH", Outlay: "NOPE", Amount: dec("5"), Narration: "x"}, ErrLedgerNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.Spend(f.ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	postings, err := f.store.Postings(f.ctx, interfaces.PostingQuery{})
	require.NoError(t, err)
	assert.Empty(t, postings, "a rejected spend must not write")
}

func TestSpendBackdated(t *testing.T) {
	f := newFixture(t)
	f.add(t, "CASH", models.Asset)
	f.add(t, "FOOD", models.Expense)

	p := f.spend(t, "CASH", "FOOD", "12.5", "2025-04-20")
	assert.Equal(t, time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC), p.CreatedAt)
	assert.Equal(t, "CASH", p.CrFromCode)
	assert.Equal(t, "FOOD", p.DbToCode)

	p = f.spend(t, "CASH", "FOOD", "1", "")
	assert.Equal(t, f.clock.t, p.CreatedAt)
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount(" 12.50 ")
	require.NoError(t, err)
	assert.True(t, a.Equal(dec("12.5")))

	for _, ok := range []string{"0.0001", "12.3400000", "9999999999999999.9999"} {
		_, err := ParseAmount(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"twelve", "0", "-5", "0.00001", "12.34567", "10000000000000000"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

type recordingPublisher struct {
	topic string
	key   string
	event any
	err   error
}

func (r *recordingPublisher) Publish(_ context.Context, topic, key string, event any) error {
	r.topic, r.key, r.event = topic, key, event
	return r.err
}

func (r *recordingPublisher) Close() error { return nil }

func TestSpendPublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	f := newFixture(t, WithPublisher(pub, "posting_recorded"))
	f.add(t, "CASH", models.Asset)
	f.add(t, "FOOD", models.Expense)

	p := f.spend(t, "CASH", "FOOD", "7", "")

	assert.Equal(t, "posting_recorded", pub.topic)
	assert.Equal(t, "CASH", pub.key)
	event, ok := pub.event.(events.PostingRecorded)
	require.True(t, ok)
	assert.Equal(t, p.ID, event.PostingID)
	assert.Equal(t, "FOOD", event.Outlay)
	assert.NotEmpty(t, event.EventID)
}

func TestSpendSurvivesPublishFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	pub := &recordingPublisher{err: errors.New("broker down")}
	f := newFixture(t, WithPublisher(pub, "posting_recorded"), WithLogger(logger))
	f.add(t, "CASH", models.Asset)
	f.add(t, "FOOD", models.Expense)

	_, err := f.ledger.Spend(f.ctx, SpendRequest{Patron: "CASH", Outlay: "FOOD", Amount: dec("7"), Narration: "x"})
	require.NoError(t, err)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	postings, err := f.store.Postings(f.ctx, interfaces.PostingQuery{})
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}

type failingStore struct {
	interfaces.LedgerStore
}

func (failingStore) Ledgers(context.Context) ([]models.Ledger, error) {
	return nil, errors.New("connection refused")
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	l := NewLedger(failingStore{})
	_, err := l.Ledgers(context.Background())

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "list ledgers", storeErr.Op)
	assert.Contains(t, err.Error(), "connection refused")
}
