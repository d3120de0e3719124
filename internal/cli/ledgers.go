package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/report"
)

type addLedgerCmd struct {
	app *App
}

func (*addLedgerCmd) Name() string     { return "add-ledger" }
func (*addLedgerCmd) Synopsis() string { return "add a new ledger" }
func (*addLedgerCmd) Usage() string {
	return `spendlog add-ledger CODE NAME DESCRIPTION SORT KIND

  Adds a ledger. CODE (at most 10 characters) is the key every other command
  uses and must be unique. KIND is LIABILITY for ledgers that net what was
  paid back against what was borrowed, any other kind (ASSET, EXPENSE...)
  only counts what flowed in.

Usage Examples:
$ spendlog add-ledger CASH "Cash" "wallet money" A ASSET
$ spendlog add-ledger CARD "Credit card" "" L LIABILITY

`
}

func (*addLedgerCmd) SetFlags(*flag.FlagSet) {}

func (c *addLedgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 5 {
		return c.app.usage(f, "add-ledger expects 5 arguments, got %d", f.NArg())
	}
	l := models.Ledger{
		Code:        f.Arg(0),
		Name:        f.Arg(1),
		Description: f.Arg(2),
		Sort:        f.Arg(3),
		Kind:        models.Kind(f.Arg(4)),
	}

	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		created, err := s.ledger.AddLedger(ctx, l)
		if err != nil {
			return err
		}
		return report.LedgerAdded(s.out, created)
	})
}

type listLedgersCmd struct {
	app *App
}

func (*listLedgersCmd) Name() string     { return "list-ledgers" }
func (*listLedgersCmd) Synopsis() string { return "list all ledgers" }
func (*listLedgersCmd) Usage() string {
	return `spendlog list-ledgers

  Lists every ledger ordered by code.
`
}

func (*listLedgersCmd) SetFlags(*flag.FlagSet) {}

func (c *listLedgersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return c.app.usage(f, "list-ledgers takes no arguments")
	}
	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		ledgers, err := s.ledger.Ledgers(ctx)
		if err != nil {
			return err
		}
		return s.renderer.Ledgers(ledgers)
	})
}
