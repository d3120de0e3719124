package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/sheikh-saqib/spendlog/internal/ledger"
	"github.com/sheikh-saqib/spendlog/internal/period"
	"github.com/sheikh-saqib/spendlog/internal/report"
)

type spendCmd struct {
	app  *App
	date string
}

func (*spendCmd) Name() string     { return "spend" }
func (*spendCmd) Synopsis() string { return "record money moving from one ledger to another" }
func (*spendCmd) Usage() string {
	return `spendlog spend [-date YYYY-MM-DD] PATRON OUTLAY AMOUNT NARRATION

  Records AMOUNT leaving the PATRON ledger (credited) for the OUTLAY ledger
  (debited). The posting is stamped now, or at midnight UTC of -date.

Usage Examples:
$ spendlog spend CASH FOOD 12.50 "lunch"
$ spendlog spend -date 2025-04-20 CARD FUEL 60 "full tank"

`
}

func (c *spendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "backdate the posting to this day (YYYY-MM-DD)")
}

func (c *spendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 4 {
		return c.app.usage(f, "spend expects 4 arguments, got %d", f.NArg())
	}
	amount, err := ledger.ParseAmount(f.Arg(2))
	if err != nil {
		return c.app.fail(err)
	}
	if c.date != "" {
		if _, err := period.ParseDate(c.date); err != nil {
			return c.app.fail(err)
		}
	}
	req := ledger.SpendRequest{
		Patron:    f.Arg(0),
		Outlay:    f.Arg(1),
		Amount:    amount,
		Narration: f.Arg(3),
		Date:      c.date,
	}

	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		posting, err := s.ledger.Spend(ctx, req)
		if err != nil {
			return err
		}
		return report.Spent(s.out, posting)
	})
}

type recentCmd struct {
	app *App
	n   int
}

func (*recentCmd) Name() string     { return "recent" }
func (*recentCmd) Synopsis() string { return "show the most recent postings" }
func (*recentCmd) Usage() string {
	return `spendlog recent [-n 10]

  Shows the most recent postings of every ledger, newest first.
`
}

func (c *recentCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", ledger.DefaultRecent, "number of postings to show")
}

func (c *recentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return c.app.usage(f, "recent takes no arguments")
	}
	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		r, err := s.ledger.Recent(ctx, c.n)
		if err != nil {
			return err
		}
		return s.renderer.Recent(r)
	})
}
