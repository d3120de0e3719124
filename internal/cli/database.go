package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type setupCmd struct {
	app *App
}

func (*setupCmd) Name() string     { return "setup" }
func (*setupCmd) Synopsis() string { return "create the database tables" }
func (*setupCmd) Usage() string {
	return `spendlog setup

  Creates the ledgers and proceedings tables if they do not exist yet.
`
}

func (*setupCmd) SetFlags(*flag.FlagSet) {}

func (c *setupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return c.app.usage(f, "setup takes no arguments")
	}
	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		if err := s.ledger.Setup(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(s.out, "Db setup completed successfully")
		return err
	})
}

type clearCmd struct {
	app *App
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every posting and ledger" }
func (*clearCmd) Usage() string {
	return `spendlog clear [-y]

  Deletes all data from the database after asking for confirmation.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return c.app.usage(f, "clear takes no arguments")
	}
	if !c.yes && !c.confirm() {
		fmt.Fprintln(c.app.Stdout, "Operation canceled. No data was deleted.")
		return subcommands.ExitSuccess
	}

	return c.app.run(ctx, func(ctx context.Context, s *session) error {
		if err := s.ledger.Clear(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(s.out, "All data cleared from ledgers and proceedings tables.")
		return err
	})
}

// confirm asks on stdin, anything but yes declines.
func (c *clearCmd) confirm() bool {
	fmt.Fprint(c.app.Stdout, "Are you sure you want to delete all data from the database? This action cannot be undone. [y/N] ")
	answer, _ := bufio.NewReader(c.app.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
