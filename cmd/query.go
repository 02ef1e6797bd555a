package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/google/subcommands"
)

type queryCmd struct {
	raw bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `fin query [-raw] <jsonpath>

  Evaluates a JSONPath expression on the ledger, in its stored json layout,
  and prints the result as json. For instance:

    fin query '$.expenses[?(@.category == "Grocery")].amount'
    fin query -raw '$.lent[0].id'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print a single string result without quotes")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError(fmt.Errorf("want exactly one JSONPath expression, got %d arguments", f.NArg()))
	}
	path := f.Arg(0)
	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		val, err := finance.Query(l.State(), path)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		// jsonpath is never clear about whether it returns a list of 1 answer, or a single answer.
		if list, ok := val.([]any); ok && len(list) == 1 && c.raw {
			val = list[0]
		}
		if str, ok := val.(string); ok && c.raw {
			fmt.Fprintln(stdout, str)
			return subcommands.ExitSuccess
		}
		out, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, string(out))
		return subcommands.ExitSuccess
	})
}
