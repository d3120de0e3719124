package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/sheikh-saqib/spendlog/internal/ledger"
	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/period"
)

// Text renders fixed-width columns.
type Text struct {
	out *termenv.Output
}

// NewText writes to w. With color, the terminal profile of w decides whether
// escape codes are used at all.
func NewText(w io.Writer, color bool) *Text {
	var opts []termenv.OutputOption
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return newText(termenv.NewOutput(w, opts...))
}

func newText(out *termenv.Output) *Text { return &Text{out: out} }

// sheet buffers one report so it reaches the output in a single write.
type sheet struct{ strings.Builder }

func (s *sheet) line(format string, a ...any) {
	s.WriteString(strings.TrimRight(fmt.Sprintf(format, a...), " "))
	s.WriteByte('\n')
}

func (s *sheet) rule(n int) { s.line("%s", strings.Repeat("-", n)) }

func (t *Text) flush(s *sheet) error {
	_, err := io.WriteString(t.out, s.String())
	return err
}

func (t *Text) Balances(r ledger.BalanceReport) error {
	var s sheet
	s.line("")
	s.line("Spending Report (%s):", r.Window.Label)
	s.line("%-10s %-30s %-15s", "Code", "Name", "Net Amount")
	s.rule(55)
	for _, row := range r.Rows {
		s.line("%-10s %-30s %-15s", row.Code, row.Name, amount(row.Net))
	}
	s.rule(55)
	s.line("%-40s %-15s", "Grand Total", amount(r.GrandTotal))
	return t.flush(&s)
}

func (t *Text) Statement(r ledger.StatementReport) error {
	var s sheet
	s.line("")
	s.line("Ledger Report for %s - %s (%s):", r.Ledger.Code, r.Ledger.Name, r.Window.Label)
	s.line("%-20s %-10s %-30s %-15s %-15s", "Date", "Counterparty", "Narration", "Credit", "Debit")
	s.rule(90)
	for _, row := range r.Rows {
		s.line("%-20s %-10s %-30s %-15s %-15s",
			row.Date.Format(timeLayout), row.Counterparty, row.Narration, amount(row.Credit), amount(row.Debit))
	}
	s.rule(90)
	s.line("%-60s %-15s %-15s", "Totals", amount(r.TotalCredits), amount(r.TotalDebits))
	s.line("%-60s %-15s", "Net Balance (Debits - Credits)", amount(r.Net))
	return t.flush(&s)
}

func (t *Text) Calendar(r ledger.CalendarReport) error {
	var s sheet
	header := r.Window.Label
	if r.Cap.Valid {
		header += fmt.Sprintf(" (Daily Cap: %s)", amount(r.Cap.Decimal))
	}
	s.line("")
	s.line("Daily Spending Report for %s:", header)

	width := 30
	if r.Cap.Valid {
		width = 45
		s.line("%-15s %-15s %-15s", "Date", "Total Spent", "Skimp")
	} else {
		s.line("%-15s %-15s", "Date", "Total Spent")
	}
	s.rule(width)

	for _, d := range r.Days {
		if !r.Cap.Valid {
			s.line("%-15s %-15s", d.Day.Format(period.DateFormat), amount(d.Amount))
			continue
		}
		s.line("%-15s %-15s %s", d.Day.Format(period.DateFormat), amount(d.Amount), t.colorSkimp(d))
	}

	s.rule(width)
	s.line("%-15s %-15s %-15s", "Grand Total", amount(r.GrandTotal), amount(r.TotalSkimp))
	return t.flush(&s)
}

// colorSkimp is green under the cap and red otherwise.
func (t *Text) colorSkimp(d ledger.CalendarDay) string {
	color := termenv.ANSIRed
	if d.UnderCap() {
		color = termenv.ANSIGreen
	}
	return t.out.String(skimp(d)).Foreground(t.out.Convert(color)).String()
}

func (t *Text) Recent(r ledger.RecentReport) error {
	var s sheet
	s.line("")
	s.line("Recent Transactions Report (Last %d):", r.Limit)
	s.line("%-20s %-10s %-10s %-15s %-30s", "Date", "From", "To", "Amount", "Narration")
	s.rule(85)
	for _, p := range r.Postings {
		s.line("%-20s %-10s %-10s %-15s %-30s",
			p.CreatedAt.Format(timeLayout), p.CrFromCode, p.DbToCode, amount(p.Amount), p.Narration)
	}
	s.rule(85)
	return t.flush(&s)
}

func (t *Text) Ledgers(ledgers []models.Ledger) error {
	var s sheet
	s.line("")
	s.line("List of Ledgers:")
	s.line("%-10s %-30s %-10s %-10s", "Code", "Name", "Sort", "Kind")
	s.rule(60)
	for _, l := range ledgers {
		s.line("%-10s %-30s %-10s %-10s", l.Code, l.Name, l.Sort, l.Kind)
	}
	return t.flush(&s)
}

var _ Renderer = (*Text)(nil)
