package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	period string
	date   string
	all    bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the records of a collection" }
func (*listCmd) Usage() string {
	return `fin list [-p <period>] [-d <date>] [-all] <incomes|expenses|lent|borrowed>

  Lists the records of a collection, most recent first. Lent and borrowed
  lists only show outstanding debts unless -all is given.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Only list records of this period (day, week, month, quarter, year).")
	f.StringVar(&c.date, "d", "", "A date within the period. Defaults to today.")
	f.BoolVar(&c.all, "all", false, "Include repaid debts")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError(fmt.Errorf("want exactly one collection, got %d arguments", f.NArg()))
	}
	collection, err := finance.ParseCollection(f.Arg(0))
	if err != nil {
		return usageError(err)
	}

	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		filter := finance.Filter{All: c.all}
		var subtitle string
		if c.period != "" {
			period, err := date.ParsePeriod(c.period)
			if err != nil {
				return usageError(err)
			}
			on := l.Today()
			if c.date != "" {
				if on, err = date.Parse(c.date); err != nil {
					return usageError(err)
				}
			}
			filter.Range = period.Range(on)
			subtitle = fmt.Sprintf("%s %s", filter.Range.Name(), filter.Range.Identifier())
		}

		s, fm := l.State(), l.Formatter()
		var list *renderer.List
		switch collection {
		case finance.Incomes:
			list = renderer.IncomeList(s.IncomeList(filter), fm)
		case finance.Expenses:
			list = renderer.ExpenseList(s.ExpenseList(filter), fm)
		default:
			list = renderer.DebtList(collection, s.DebtList(collection, filter), fm)
		}
		list.Subtitle = subtitle
		printMarkdown(renderer.RenderList(list))
		return subcommands.ExitSuccess
	})
}
