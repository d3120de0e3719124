package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces"
	"github.com/sheikh-saqib/spendlog/internal/models"
)

// DefaultRecent is how many postings Recent returns when asked for none.
const DefaultRecent = 10

// BalanceRow is the activity of one ledger inside a window.
type BalanceRow struct {
	Code    string
	Name    string
	Kind    models.Kind
	Debits  decimal.Decimal // received as db_to
	Credits decimal.Decimal // given as cr_from
	Net     decimal.Decimal // Kind.Policy()(Debits, Credits)
}

type BalanceReport struct {
	Window     models.Window
	Rows       []BalanceRow // net descending, ties by code
	GrandTotal decimal.Decimal
}

// StatementRow is one posting seen from the statement ledger.
type StatementRow struct {
	Date         time.Time
	Counterparty string
	Narration    string
	Credit       decimal.Decimal // amount when the ledger is cr_from
	Debit        decimal.Decimal // amount when the ledger is db_to
}

type StatementReport struct {
	Ledger       models.Ledger
	Window       models.Window
	Rows         []StatementRow // newest first
	TotalCredits decimal.Decimal
	TotalDebits  decimal.Decimal
	Net          decimal.Decimal // TotalDebits - TotalCredits
}

type RecentReport struct {
	Limit    int
	Postings []models.Posting // newest first
}

// Balances returns the net amount of every ledger over the window,
// ledgers without activity included with a zero net.
func (l *Ledger) Balances(ctx context.Context, w models.Window) (BalanceReport, error) {
	ledgers, err := l.store.Ledgers(ctx)
	if err != nil {
		return BalanceReport{}, storeError("list ledgers", err)
	}
	postings, err := l.store.Postings(ctx, interfaces.PostingQuery{Window: &w})
	if err != nil {
		return BalanceReport{}, storeError("load postings", err)
	}

	debits := make(map[int64]decimal.Decimal)
	credits := make(map[int64]decimal.Decimal)
	for _, p := range postings {
		debits[p.DbTo] = debits[p.DbTo].Add(p.Amount)
		credits[p.CrFrom] = credits[p.CrFrom].Add(p.Amount)
	}

	report := BalanceReport{Window: w, Rows: make([]BalanceRow, 0, len(ledgers))}
	for _, ledger := range ledgers {
		row := BalanceRow{
			Code:    ledger.Code,
			Name:    ledger.Name,
			Kind:    ledger.Kind,
			Debits:  debits[ledger.ID],
			Credits: credits[ledger.ID],
		}
		row.Net = ledger.Kind.Policy()(row.Debits, row.Credits)
		report.GrandTotal = report.GrandTotal.Add(row.Net)
		report.Rows = append(report.Rows, row)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		if c := report.Rows[i].Net.Cmp(report.Rows[j].Net); c != 0 {
			return c > 0
		}
		return report.Rows[i].Code < report.Rows[j].Code
	})
	return report, nil
}

// Statement lists every posting touching the ledger inside the window.
func (l *Ledger) Statement(ctx context.Context, code string, w models.Window) (StatementReport, error) {
	ledger, err := l.Resolve(ctx, code)
	if err != nil {
		return StatementReport{}, err
	}

	postings, err := l.store.Postings(ctx, interfaces.PostingQuery{Window: &w, LedgerID: ledger.ID})
	if err != nil {
		return StatementReport{}, storeError("load postings", err)
	}

	report := StatementReport{Ledger: ledger, Window: w, Rows: make([]StatementRow, 0, len(postings))}
	for _, p := range postings {
		row := StatementRow{
			Date:         p.CreatedAt,
			Counterparty: p.Counterparty(ledger.ID),
			Narration:    p.Narration,
		}
		// a posting from the ledger to itself is both
		if p.CrFrom == ledger.ID {
			row.Credit = p.Amount
		}
		if p.DbTo == ledger.ID {
			row.Debit = p.Amount
		}
		report.TotalCredits = report.TotalCredits.Add(row.Credit)
		report.TotalDebits = report.TotalDebits.Add(row.Debit)
		report.Rows = append(report.Rows, row)
	}
	report.Net = report.TotalDebits.Sub(report.TotalCredits)
	return report, nil
}

// Recent returns the n most recent postings, DefaultRecent when n <= 0.
func (l *Ledger) Recent(ctx context.Context, n int) (RecentReport, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	postings, err := l.store.Postings(ctx, interfaces.PostingQuery{Limit: n})
	if err != nil {
		return RecentReport{}, storeError("load postings", err)
	}
	return RecentReport{Limit: n, Postings: postings}, nil
}
