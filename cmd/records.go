package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/date"
	"github.com/google/subcommands"
)

// parseDate parses an optional date flag. The zero Date lets the ledger use today.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// usageError prints err and returns ExitUsageError.
func usageError(err error) subcommands.ExitStatus {
	fmt.Fprintln(stderr, "Error:", err)
	return subcommands.ExitUsageError
}

type balanceCmd struct {
	cash string
	bank string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "set the cash and bank balances" }
func (*balanceCmd) Usage() string {
	return `fin balance [-cash <amount>] [-bank <amount>]

  Overwrites the cash and bank balances. This is a manual correction: no record
  is created. A balance whose flag is omitted keeps its current value.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cash, "cash", "", "New cash balance")
	f.StringVar(&c.bank, "bank", "", "New bank balance")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.cash == "" && c.bank == "" {
		return usageError(fmt.Errorf("at least one of -cash or -bank is required"))
	}
	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		s := l.State()
		cash, bank := s.Cash, s.Bank
		var err error
		if c.cash != "" {
			if cash, err = finance.ParseAmount(c.cash); err != nil {
				return usageError(err)
			}
		}
		if c.bank != "" {
			if bank, err = finance.ParseAmount(c.bank); err != nil {
				return usageError(err)
			}
		}
		return report(l.SetBalances(cash, bank))
	})
}

type incomeCmd struct {
	amount string
	date   string
	source string
	remark string
	via    string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record an income" }
func (*incomeCmd) Usage() string {
	return `fin income -a <amount> [-d <date>] [-source <source>] [-m <remark>] [-via cash|bank]

  Records an income and credits it to the cash or bank balance.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount received")
	f.StringVar(&c.date, "d", "", "Date of the income. Defaults to today. See the user manual for supported date formats.")
	f.StringVar(&c.source, "source", "", "Where the income comes from, e.g. Salary")
	f.StringVar(&c.remark, "m", "", "Optional remark")
	f.StringVar(&c.via, "via", "bank", "Account credited: cash or bank")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := finance.ParseAmount(c.amount)
	if err != nil {
		return usageError(err)
	}
	on, err := parseDate(c.date)
	if err != nil {
		return usageError(err)
	}
	account, err := finance.ParseAccount(c.via)
	if err != nil {
		return usageError(err)
	}
	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		return report(l.AddIncome(finance.Income{
			Amount:  amount,
			Date:    on,
			Source:  c.source,
			Remark:  c.remark,
			Account: account,
		}))
	})
}

type expenseCmd struct {
	amount   string
	date     string
	category string
	location string
	remark   string
	via      string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record an expense" }
func (*expenseCmd) Usage() string {
	return `fin expense -a <amount> -c <category> [-d <date>] [-loc <location>] [-m <remark>] [-via cash|bank]

  Records an expense and debits it from the cash or bank balance. The balance
  must cover the amount.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount spent")
	f.StringVar(&c.category, "c", "", "Category of the expense, e.g. Grocery")
	f.StringVar(&c.date, "d", "", "Date of the expense. Defaults to today. See the user manual for supported date formats.")
	f.StringVar(&c.location, "loc", "", "Where the money was spent")
	f.StringVar(&c.remark, "m", "", "Optional remark")
	f.StringVar(&c.via, "via", "cash", "Account debited: cash or bank")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := finance.ParseAmount(c.amount)
	if err != nil {
		return usageError(err)
	}
	on, err := parseDate(c.date)
	if err != nil {
		return usageError(err)
	}
	account, err := finance.ParseAccount(c.via)
	if err != nil {
		return usageError(err)
	}
	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		return report(l.AddExpense(finance.Expense{
			Amount:   amount,
			Date:     on,
			Category: c.category,
			Location: c.location,
			Remark:   c.remark,
			Account:  account,
		}))
	})
}

// debtCmd records money lent or borrowed, depending on kind.
type debtCmd struct {
	kind   finance.Collection
	amount string
	date   string
	name   string
	remark string
}

func (c *debtCmd) Name() string {
	if c.kind == finance.Borrowed {
		return "borrow"
	}
	return "lend"
}

func (c *debtCmd) Synopsis() string {
	if c.kind == finance.Borrowed {
		return "record money borrowed from someone"
	}
	return "record money lent to someone"
}

func (c *debtCmd) Usage() string {
	if c.kind == finance.Borrowed {
		return `fin borrow -a <amount> -n <name> [-d <date>] [-m <remark>]

  Records money borrowed from someone. The amount is added to the cash balance
  and stays outstanding until repaid with 'fin repay borrowed'.
`
	}
	return `fin lend -a <amount> -n <name> [-d <date>] [-m <remark>]

  Records money lent to someone. The amount is taken from the cash balance and
  stays outstanding until repaid with 'fin repay lent'.
`
}

func (c *debtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount of the debt")
	f.StringVar(&c.name, "n", "", "Name of the other party")
	f.StringVar(&c.date, "d", "", "Date of the debt. Defaults to today. See the user manual for supported date formats.")
	f.StringVar(&c.remark, "m", "", "Optional remark")
}

func (c *debtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := finance.ParseAmount(c.amount)
	if err != nil {
		return usageError(err)
	}
	on, err := parseDate(c.date)
	if err != nil {
		return usageError(err)
	}
	if c.name == "" {
		return usageError(fmt.Errorf("-n <name> is required"))
	}
	return withLedger(func(_ *config.Config, l *finance.Ledger) subcommands.ExitStatus {
		return report(l.AddDebt(c.kind, finance.Debt{
			Amount: amount,
			Date:   on,
			Name:   c.name,
			Remark: c.remark,
		}))
	})
}
