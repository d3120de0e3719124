package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/period"
)

func allTime() models.Window { return models.Window{Start: period.Epoch, Label: "All Time"} }

func net(t *testing.T, r BalanceReport, code string) decimal.Decimal {
	t.Helper()
	for _, row := range r.Rows {
		if row.Code == code {
			return row.Net
		}
	}
	t.Fatalf("no row for %s", code)
	return decimal.Zero
}

func TestBalancesSignPolicy(t *testing.T) {
	f := newFixture(t)
	f.add(t, "CARD", models.Liability)
	f.add(t, "BANK", models.Asset)
	f.add(t, "FOOD", models.Expense)
	f.add(t, "IDLE", models.Asset)

	f.spend(t, "CARD", "FOOD", "30", "") // credits CARD by 30
	f.spend(t, "BANK", "CARD", "50", "") // debits CARD by 50
	f.spend(t, "FOOD", "BANK", "30", "") // credit on a normal ledger is ignored

	r, err := f.ledger.Balances(f.ctx, allTime())
	require.NoError(t, err)

	assert.True(t, net(t, r, "CARD").Equal(dec("20")))
	assert.True(t, net(t, r, "BANK").Equal(dec("30")))
	assert.True(t, net(t, r, "FOOD").Equal(dec("30")))
	assert.True(t, net(t, r, "IDLE").IsZero())
	assert.True(t, r.GrandTotal.Equal(dec("80")))

	codes := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		codes = append(codes, row.Code)
	}
	assert.Equal(t, []string{"BANK", "FOOD", "CARD", "IDLE"}, codes)
}

func TestBalancesNegativeLiability(t *testing.T) {
	f := newFixture(t)
	f.add(t, "LOAN", models.Liability)
	f.add(t, "BANK", models.Asset)
	f.spend(t, "LOAN", "BANK", "100", "")

	r, err := f.ledger.Balances(f.ctx, allTime())
	require.NoError(t, err)
	assert.True(t, net(t, r, "LOAN").Equal(dec("-100")))
	assert.Equal(t, "LOAN", r.Rows[len(r.Rows)-1].Code)
}

func TestTodayReportRollsOver(t *testing.T) {
	f := newFixture(t)
	f.add(t, "PATRON", models.Asset)
	f.add(t, "OUTLAY", models.Expense)
	f.spend(t, "PATRON", "OUTLAY", "100", "")

	w, err := f.ledger.Window(period.NewNamed(period.All))
	require.NoError(t, err)
	r, err := f.ledger.Balances(f.ctx, w)
	require.NoError(t, err)
	assert.True(t, net(t, r, "OUTLAY").Equal(dec("100")))

	w, err = f.ledger.Window(period.NewNamed(period.Today))
	require.NoError(t, err)
	r, err = f.ledger.Balances(f.ctx, w)
	require.NoError(t, err)
	assert.True(t, net(t, r, "OUTLAY").Equal(dec("100")))

	f.clock.t = f.clock.t.Add(24 * time.Hour)
	w, err = f.ledger.Window(period.NewNamed(period.Today))
	require.NoError(t, err)
	r, err = f.ledger.Balances(f.ctx, w)
	require.NoError(t, err)
	assert.True(t, net(t, r, "OUTLAY").IsZero())
}

func TestStatement(t *testing.T) {
	f := newFixture(t)
	f.add(t, "CARD", models.Liability)
	f.add(t, "BANK", models.Asset)
	f.add(t, "FOOD", models.Expense)

	f.spend(t, "CARD", "FOOD", "30", "2025-04-01")
	f.spend(t, "BANK", "CARD", "50", "2025-04-10")
	f.spend(t, "CARD", "FOOD", "5", "2025-04-20")
	f.spend(t, "BANK", "FOOD", "999", "2025-04-20") // not CARD

	r, err := f.ledger.Statement(f.ctx, "CARD", allTime())
	require.NoError(t, err)
	require.Len(t, r.Rows, 3)

	assert.Equal(t, "FOOD", r.Rows[0].Counterparty)
	assert.True(t, r.Rows[0].Credit.Equal(dec("5")))
	assert.True(t, r.Rows[0].Debit.IsZero())
	assert.Equal(t, "BANK", r.Rows[1].Counterparty)
	assert.True(t, r.Rows[1].Debit.Equal(dec("50")))

	assert.True(t, r.TotalCredits.Equal(dec("35")))
	assert.True(t, r.TotalDebits.Equal(dec("50")))
	assert.True(t, r.Net.Equal(r.TotalDebits.Sub(r.TotalCredits)))

	w, err := period.Resolve(period.Between("2025-04-05", "2025-04-10"), f.clock.t)
	require.NoError(t, err)
	r, err = f.ledger.Statement(f.ctx, "CARD", w)
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.True(t, r.Net.Equal(dec("50")))

	_, err = f.ledger.Statement(f.ctx, "NOPE", allTime())
	assert.ErrorIs(t, err, ErrLedgerNotFound)
}

func TestStatementSelfPosting(t *testing.T) {
	f := newFixture(t)
	f.add(t, "CASH", models.Asset)
	f.spend(t, "CASH", "CASH", "10", "")

	r, err := f.ledger.Statement(f.ctx, "CASH", allTime())
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "CASH", r.Rows[0].Counterparty)
	assert.True(t, r.Net.IsZero())
}

func TestRecent(t *testing.T) {
	f := newFixture(t)
	f.add(t, "CASH", models.Asset)
	f.add(t, "FOOD", models.Expense)
	for i := 1; i <= 12; i++ {
		f.spend(t, "CASH", "FOOD", decimal.NewFromInt(int64(i)).String(), "")
		f.clock.t = f.clock.t.Add(time.Minute)
	}

	r, err := f.ledger.Recent(f.ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultRecent, r.Limit)
	require.Len(t, r.Postings, DefaultRecent)
	assert.True(t, r.Postings[0].Amount.Equal(dec("12")))

	r, err = f.ledger.Recent(f.ctx, 3)
	require.NoError(t, err)
	assert.Len(t, r.Postings, 3)
}
