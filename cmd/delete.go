package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a record and reverse its effect on the balances" }
func (*deleteCmd) Usage() string {
	return `fin delete <incomes|expenses|lent|borrowed> <id>

  Deletes a record. Its effect on the balances is reversed: a deleted income
  is taken back, a deleted expense is refunded, a deleted loan is returned to
  cash and a deleted borrowing is paid back from cash.
`
}

func (*deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usageError(fmt.Errorf("want a collection and a record id, got %d arguments", f.NArg()))
	}
	collection, err := finance.ParseCollection(f.Arg(0))
	if err != nil {
		return usageError(err)
	}
	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		return report(l.Delete(collection, f.Arg(1)))
	})
}

type repayCmd struct {
	via string
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "mark a debt as repaid" }
func (*repayCmd) Usage() string {
	return `fin repay [-via cash|bank] <lent|borrowed> <id>

  Marks an outstanding debt as repaid.

  Repaying money lent credits the account given by -via. Repaying money
  borrowed debits it, and records the payment as a "Debt Repayment" expense.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.via, "via", "cash", "Account receiving or paying the money: cash or bank")
}

func (c *repayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usageError(fmt.Errorf("want lent or borrowed and a debt id, got %d arguments", f.NArg()))
	}
	collection, err := finance.ParseCollection(f.Arg(0))
	if err != nil {
		return usageError(err)
	}
	via, err := finance.ParseAccount(c.via)
	if err != nil {
		return usageError(err)
	}
	id := f.Arg(1)
	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		switch collection {
		case finance.Lent:
			return report(l.RepayLent(id, via))
		case finance.Borrowed:
			return report(l.RepayBorrowed(id, via))
		default:
			return usageError(fmt.Errorf("%s records cannot be repaid, only lent or borrowed ones", collection))
		}
	})
}
