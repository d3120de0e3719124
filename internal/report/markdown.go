package report

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/sheikh-saqib/spendlog/internal/ledger"
	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/period"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates = template.Must(template.New("report").Funcs(template.FuncMap{
	"amount":    amount,
	"skimp":     skimp,
	"cell":      cell,
	"day":       func(t time.Time) string { return t.Format(period.DateFormat) },
	"timestamp": func(t time.Time) string { return t.Format(timeLayout) },
}).ParseFS(templatesFS, "templates/*.md"))

// cell escapes the table separator.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// Markdown renders the reports as markdown tables displayed with glamour.
type Markdown struct {
	w     io.Writer
	style string
}

// NewMarkdown writes to w, styled for a dark terminal with color and plain otherwise.
func NewMarkdown(w io.Writer, color bool) *Markdown {
	style := "notty"
	if color {
		style = "dark"
	}
	return &Markdown{w: w, style: style}
}

// markdown executes the named template into a markdown string.
func markdown(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}

func (m *Markdown) print(name string, data any) error {
	md, err := markdown(name, data)
	if err != nil {
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(m.w, out)
	return err
}

func (m *Markdown) Balances(r ledger.BalanceReport) error { return m.print("balances.md", r) }
func (m *Markdown) Statement(r ledger.StatementReport) error { return m.print("statement.md", r) }
func (m *Markdown) Calendar(r ledger.CalendarReport) error { return m.print("calendar.md", r) }
func (m *Markdown) Recent(r ledger.RecentReport) error { return m.print("recent.md", r) }
func (m *Markdown) Ledgers(ledgers []models.Ledger) error { return m.print("ledgers.md", ledgers) }

var _ Renderer = (*Markdown)(nil)
