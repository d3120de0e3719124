// Package cli implements the spendlog subcommands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/spendlog/internal/config"
	"github.com/sheikh-saqib/spendlog/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces"
	"github.com/sheikh-saqib/spendlog/internal/ledger"
	"github.com/sheikh-saqib/spendlog/internal/report"
	"github.com/sheikh-saqib/spendlog/internal/storage/postgres"
)

// StoreOpener opens the store of an invocation and returns its release function.
type StoreOpener func(ctx context.Context, cfg config.Config) (interfaces.LedgerStore, func() error, error)

// PublisherOpener returns the event publisher, nil when events are disabled.
type PublisherOpener func(cfg config.Config) interfaces.EventPublisher

// App is the state shared by every subcommand of one invocation.
type App struct {
	Config config.Config

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	OpenStore     StoreOpener
	OpenPublisher PublisherOpener
	Now           func() time.Time
}

// NewApp returns an App on the process streams, PostgreSQL and Kafka.
func NewApp(cfg config.Config) *App {
	return &App{
		Config:        cfg,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		OpenStore:     OpenPostgres,
		OpenPublisher: OpenKafka,
		Now:           time.Now,
	}
}

// OpenPostgres connects to cfg.DatabaseURL.
func OpenPostgres(ctx context.Context, cfg config.Config) (interfaces.LedgerStore, func() error, error) {
	store, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// OpenKafka publishes to cfg.KafkaBrokers, if any.
func OpenKafka(cfg config.Config) interfaces.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return kafka.NewPublisher(cfg.KafkaBrokers)
}

// NewCommander registers every subcommand of app on a commander reading topFlags.
func NewCommander(topFlags *flag.FlagSet, app *App) *subcommands.Commander {
	cdr := subcommands.NewCommander(topFlags, "spendlog")
	cdr.Output = app.Stdout
	cdr.Error = app.Stderr

	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")

	cdr.Register(&addLedgerCmd{app: app}, "ledgers")
	cdr.Register(&listLedgersCmd{app: app}, "ledgers")

	cdr.Register(&spendCmd{app: app}, "postings")
	recent := &recentCmd{app: app}
	cdr.Register(recent, "postings")
	cdr.Register(subcommands.Alias("last", recent), "postings")

	cdr.Register(&reportCmd{app: app}, "reports")
	cdr.Register(&ledgerReportCmd{app: app}, "reports")
	cdr.Register(&calendarCmd{app: app}, "reports")

	setup := &setupCmd{app: app}
	cdr.Register(setup, "database")
	cdr.Register(subcommands.Alias("db-setup", setup), "database")
	cdr.Register(&clearCmd{app: app}, "database")
	return cdr
}

// configureLogging sends logrus to the error stream at the configured level.
func (a *App) configureLogging() {
	logrus.SetOutput(a.Stderr)
	logrus.SetLevel(a.Config.Level())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// session is one opened store, publisher and renderer.
type session struct {
	ledger   *ledger.Ledger
	renderer report.Renderer
	out      io.Writer
}

// run opens the collaborators, calls fn and turns its error into an exit status.
func (a *App) run(ctx context.Context, fn func(ctx context.Context, s *session) error) subcommands.ExitStatus {
	a.configureLogging()
	if err := a.session(ctx, fn); err != nil {
		return a.fail(err)
	}
	return subcommands.ExitSuccess
}

func (a *App) session(ctx context.Context, fn func(ctx context.Context, s *session) error) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	renderer, err := report.New(a.Config.ReportFormat(), a.Stdout, a.Config.Color)
	if err != nil {
		return err
	}

	store, closeStore, err := a.OpenStore(ctx, a.Config)
	if err != nil {
		return &ledger.StoreError{Op: "open store", Err: err}
	}
	defer closeStore()
	logrus.Debug("store opened")

	opts := []ledger.Option{ledger.WithClock(a.Now)}
	if pub := a.OpenPublisher(a.Config); pub != nil {
		defer pub.Close()
		opts = append(opts, ledger.WithPublisher(pub, a.Config.KafkaTopic))
	}

	return fn(ctx, &session{
		ledger:   ledger.NewLedger(store, opts...),
		renderer: renderer,
		out:      a.Stdout,
	})
}

func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usage reports a malformed command line.
func (a *App) usage(f *flag.FlagSet, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.Stderr, "Error: "+format+"\n", args...)
	f.Usage()
	return subcommands.ExitUsageError
}
