package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/posener/complete/v2"

	"github.com/sheikh-saqib/spendlog/internal/cli"
	"github.com/sheikh-saqib/spendlog/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := cli.NewApp(cfg)
	app.Config.RegisterFlags(flag.CommandLine)
	commander := cli.NewCommander(flag.CommandLine, app)

	// answers shell completion requests (and COMP_INSTALL=1) then exits
	complete.Complete("spendlog", cli.Completion(flag.CommandLine, commander))

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
