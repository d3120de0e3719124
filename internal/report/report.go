// Package report renders the reports computed by the ledger package.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/spendlog/internal/ledger"
	"github.com/sheikh-saqib/spendlog/internal/models"
)

// Output formats accepted by New.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

const timeLayout = "2006-01-02 15:04:05"

// Renderer writes reports to its output.
type Renderer interface {
	Balances(r ledger.BalanceReport) error
	Statement(r ledger.StatementReport) error
	Calendar(r ledger.CalendarReport) error
	Recent(r ledger.RecentReport) error
	Ledgers(ledgers []models.Ledger) error
}

// New returns the renderer of format writing to w. Without color, styling
// escape codes are never written.
func New(format string, w io.Writer, color bool) (Renderer, error) {
	switch format {
	case "", FormatText:
		return NewText(w, color), nil
	case FormatMarkdown:
		return NewMarkdown(w, color), nil
	default:
		return nil, fmt.Errorf("unknown format %q, use %s or %s", format, FormatText, FormatMarkdown)
	}
}

// Formats lists the accepted formats.
func Formats() []string { return []string{FormatText, FormatMarkdown} }

func amount(d decimal.Decimal) string { return d.StringFixed(2) }

// skimp formats the cap difference of a day, over-cap days get a "!" so they
// stand out without color.
func skimp(d ledger.CalendarDay) string {
	if d.UnderCap() {
		return amount(d.Skimp)
	}
	return amount(d.Skimp) + " !"
}

// LedgerAdded confirms a new ledger.
func LedgerAdded(w io.Writer, l models.Ledger) error {
	_, err := fmt.Fprintf(w, "Added ledger: %s - %s\n", l.Code, l.Name)
	return err
}

// Spent confirms a recorded posting.
func Spent(w io.Writer, p models.Posting) error {
	_, err := fmt.Fprintf(w, "Added spending: %s -> %s: %s (%s)\n", p.CrFromCode, p.DbToCode, amount(p.Amount), p.Narration)
	return err
}
