package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces"
	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/period"
)

// CalendarDay is the spending of one UTC day.
type CalendarDay struct {
	Day    time.Time
	Amount decimal.Decimal
	Skimp  decimal.Decimal // cap - Amount, zero without a cap
}

type CalendarReport struct {
	Window     models.Window
	Cap        decimal.NullDecimal
	Days       []CalendarDay // ascending, days netting to zero are left out
	GrandTotal decimal.Decimal
	TotalSkimp decimal.Decimal // sum of the positive skimps only
}

// UnderCap reports whether the day stayed strictly below the cap.
func (d CalendarDay) UnderCap() bool { return d.Skimp.IsPositive() }

// ParseCap parses a daily cap, which must be a positive number.
func ParseCap(s string) (decimal.Decimal, error) {
	c, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidCap, s)
	}
	if !c.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: cap must be positive, got %s", ErrInvalidCap, s)
	}
	return c, nil
}

// SplitCalendarArgs reads the [MONTH] [CAP] arguments of the calendar command.
// A single argument that parses as a number is the cap, anything else is a month.
func SplitCalendarArgs(args []string) (month string, limit decimal.NullDecimal, err error) {
	switch len(args) {
	case 0:
		return "", limit, nil
	case 1:
		if _, numErr := decimal.NewFromString(strings.TrimSpace(args[0])); numErr != nil {
			return args[0], limit, nil
		}
		c, err := ParseCap(args[0])
		if err != nil {
			return "", limit, err
		}
		return "", decimal.NewNullDecimal(c), nil
	case 2:
		c, err := ParseCap(args[1])
		if err != nil {
			return "", limit, err
		}
		return args[0], decimal.NewNullDecimal(c), nil
	default:
		return "", limit, fmt.Errorf("expected at most a month and a cap, got %d arguments", len(args))
	}
}

// Calendar sums the spending of each day of month (the current month when
// empty). Every ledger end of a posting contributes its kind's policy, so a
// day total agrees with the Balances of that day.
func (l *Ledger) Calendar(ctx context.Context, month string, limit decimal.NullDecimal) (CalendarReport, error) {
	w, err := period.ResolveMonth(month, l.now())
	if err != nil {
		return CalendarReport{}, err
	}

	ledgers, err := l.store.Ledgers(ctx)
	if err != nil {
		return CalendarReport{}, storeError("list ledgers", err)
	}
	kinds := make(map[int64]models.Kind, len(ledgers))
	for _, ledger := range ledgers {
		kinds[ledger.ID] = ledger.Kind
	}

	postings, err := l.store.Postings(ctx, interfaces.PostingQuery{Window: &w})
	if err != nil {
		return CalendarReport{}, storeError("load postings", err)
	}

	daily := make(map[time.Time]decimal.Decimal)
	for _, p := range postings {
		day := period.StartOfDay(p.CreatedAt)
		daily[day] = daily[day].Add(postingAmount(p, kinds))
	}

	report := CalendarReport{Window: w, Cap: limit}
	for day, amount := range daily {
		if amount.IsZero() {
			continue
		}
		report.Days = append(report.Days, CalendarDay{Day: day, Amount: amount})
	}
	sort.Slice(report.Days, func(i, j int) bool { return report.Days[i].Day.Before(report.Days[j].Day) })

	for i := range report.Days {
		d := &report.Days[i]
		report.GrandTotal = report.GrandTotal.Add(d.Amount)
		if !limit.Valid {
			continue
		}
		d.Skimp = limit.Decimal.Sub(d.Amount)
		if d.UnderCap() {
			report.TotalSkimp = report.TotalSkimp.Add(d.Skimp)
		}
	}
	return report, nil
}

// postingAmount applies the policy of each distinct end of the posting.
func postingAmount(p models.Posting, kinds map[int64]models.Kind) decimal.Decimal {
	ends := []int64{p.CrFrom}
	if p.DbTo != p.CrFrom {
		ends = append(ends, p.DbTo)
	}

	total := decimal.Zero
	for _, id := range ends {
		debit, credit := decimal.Zero, decimal.Zero
		if p.DbTo == id {
			debit = p.Amount
		}
		if p.CrFrom == id {
			credit = p.Amount
		}
		total = total.Add(kinds[id].Policy()(debit, credit))
	}
	return total
}
