package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/sheikh-saqib/spendlog/internal/ledger"
	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/period"
)

// periodFlags are the -date and -from/-to flags shared by the reports.
type periodFlags struct {
	date, from, to string
}

func (p *periodFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "date", "", "report a single day (YYYY-MM-DD)")
	f.StringVar(&p.from, "from", "", "first day of a date range (YYYY-MM-DD), requires -to")
	f.StringVar(&p.to, "to", "", "last day of a date range (YYYY-MM-DD), requires -from")
}

// window resolves the period arguments before the store is opened, so a bad
// date or range is reported as such even when the database is down.
func (p *periodFlags) window(app *App, name string) (models.Window, error) {
	spec, err := period.FromArgs(name, p.date, p.from, p.to)
	if err != nil {
		return models.Window{}, err
	}
	return period.Resolve(spec, app.Now())
}

type reportCmd struct {
	app *App
	periodFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "show the net amount of every ledger" }
func (*reportCmd) Usage() string {
	return `spendlog report [-date YYYY-MM-DD | -from YYYY-MM-DD -to YYYY-MM-DD] [today|week|month|all]

  Shows the net amount of every ledger over the period, largest first.
  LIABILITY ledgers net debits against credits, other ledgers only sum their
  debits. Without any period, all postings are reported.

Usage Examples:
$ spendlog report week
$ spendlog report -from 2025-04-01 -to 2025-04-15

`
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return c.app.usage(f, "report expects at most a period, got %d arguments", f.NArg())
	}
	w, err := c.window(c.app, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}

	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		r, err := s.ledger.Balances(ctx, w)
		if err != nil {
			return err
		}
		return s.renderer.Balances(r)
	})
}

type ledgerReportCmd struct {
	app *App
	periodFlags
}

func (*ledgerReportCmd) Name() string     { return "ledger-report" }
func (*ledgerReportCmd) Synopsis() string { return "show the postings of one ledger" }
func (*ledgerReportCmd) Usage() string {
	return `spendlog ledger-report [-date YYYY-MM-DD | -from YYYY-MM-DD -to YYYY-MM-DD] CODE [today|week|month|all]

  Lists every posting of the ledger CODE over the period, newest first, with
  its credits, debits and the net balance (debits - credits).
`
}

func (c *ledgerReportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		return c.app.usage(f, "ledger-report expects a ledger code and an optional period")
	}
	code := f.Arg(0)
	w, err := c.window(c.app, f.Arg(1))
	if err != nil {
		return c.app.fail(err)
	}

	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		r, err := s.ledger.Statement(ctx, code, w)
		if err != nil {
			return err
		}
		return s.renderer.Statement(r)
	})
}

type calendarCmd struct {
	app *App
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "show the spending of each day of a month" }
func (*calendarCmd) Usage() string {
	return `spendlog calendar [MONTH] [CAP]

  Shows the total spent on each day of MONTH (full name, the current month by
  default). A month later in the year than today is taken from last year.
  With a daily CAP, each day also shows the skimp (CAP - spent); days over
  the cap are marked with "!". A single numeric argument is read as the cap.

Usage Examples:
$ spendlog calendar
$ spendlog calendar 50
$ spendlog calendar march 40

`
}

func (*calendarCmd) SetFlags(*flag.FlagSet) {}

func (c *calendarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 2 {
		return c.app.usage(f, "calendar expects at most a month and a cap, got %d arguments", f.NArg())
	}
	month, limit, err := ledger.SplitCalendarArgs(f.Args())
	if err != nil {
		return c.app.fail(fmt.Errorf("calendar: %w", err))
	}
	if month != "" {
		if _, err := period.ParseMonth(month); err != nil {
			return c.app.fail(fmt.Errorf("calendar: %w", err))
		}
	}

	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		r, err := s.ledger.Calendar(ctx, month, limit)
		if err != nil {
			return err
		}
		return s.renderer.Calendar(r)
	})
}
