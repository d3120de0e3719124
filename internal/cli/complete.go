package cli

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/spendlog/internal/period"
	"github.com/sheikh-saqib/spendlog/internal/report"
)

// flagValues predicts the values of flags with a closed set of values.
var flagValues = map[string]complete.Predictor{
	"format":    predict.Set(report.Formats()),
	"log-level": predict.Set(logLevels()),
}

// commandArgs predicts the positional arguments of each command.
var commandArgs = map[string]complete.Predictor{
	"report":        predict.Set(period.Names()),
	"ledger-report": predict.Something,
	"calendar":      predict.Set(period.MonthNames()),
	"add-ledger":    predict.Something,
	"spend":         predict.Something,
}

func logLevels() []string {
	levels := make([]string, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		levels = append(levels, l.String())
	}
	return levels
}

// Completion describes the command line of cdr for shell completion.
func Completion(topFlags *flag.FlagSet, cdr *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(topFlags),
	}

	var names []string
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(f),
			Args:  commandArgs[c.Name()],
		}
		names = append(names, c.Name())
	})
	if help, ok := root.Sub["help"]; ok {
		help.Args = predict.Set(names)
	}
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	predictors := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch p, ok := flagValues[fl.Name]; {
		case ok:
			predictors[fl.Name] = p
		case isBool(fl):
			predictors[fl.Name] = predict.Nothing
		default:
			predictors[fl.Name] = predict.Something
		}
	})
	return predictors
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
