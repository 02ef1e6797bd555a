package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	skipCategories bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the balances, debts and spending breakdown" }
func (*summaryCmd) Usage() string {
	return `fin summary [-no-categories]

  Displays the total, cash and bank balances, the outstanding debts and the
  expenses per category.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipCategories, "no-categories", false, "Do not display the spending breakdown")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(func(cfg *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		cats, err := config.LoadCategories(cfg.Categories)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		d := renderer.NewDashboard(finance.NewSummary(l.State()), l.Formatter(), cats.Color)
		printMarkdown(renderer.RenderSummary(d, renderer.SummaryRenderOptions{SkipCategories: c.skipCategories}))
		return subcommands.ExitSuccess
	})
}
