package renderer

import (
	"github.com/etnz/finance"
)

// List is a table of ledger records, ready to render.
type List struct {
	Title    string
	Subtitle string // optional, e.g. the period covered
	Empty    string // displayed instead of the table when there are no rows
	Header   []string
	Right    []int // indices of the right aligned columns
	Rows     [][]string
}

// IncomeList lists incomes, in the given order.
func IncomeList(incomes []finance.Income, f finance.Formatter) *List {
	l := &List{
		Title:  "Incomes",
		Empty:  finance.EmptyMessage(finance.Incomes),
		Header: []string{"Date", "Source", "Account", "Amount", "Remark", "ID"},
		Right:  []int{3},
	}
	for _, in := range incomes {
		l.Rows = append(l.Rows, []string{in.Date.String(), in.Source, in.Account.Label(), f.Format(in.Amount), in.Remark, in.ID})
	}
	return l
}

// ExpenseList lists expenses, in the given order.
func ExpenseList(expenses []finance.Expense, f finance.Formatter) *List {
	l := &List{
		Title:  "Expenses",
		Empty:  finance.EmptyMessage(finance.Expenses),
		Header: []string{"Date", "Category", "Location", "Account", "Amount", "Remark", "ID"},
		Right:  []int{4},
	}
	for _, e := range expenses {
		l.Rows = append(l.Rows, []string{e.Date.String(), e.Category, e.Location, e.Account.Label(), f.Format(e.Amount), e.Remark, e.ID})
	}
	return l
}

// DebtList lists the debts of collection c, in the given order.
func DebtList(c finance.Collection, debts []finance.Debt, f finance.Formatter) *List {
	l := &List{
		Title:  "Money Lent",
		Empty:  finance.EmptyMessage(c),
		Header: []string{"Date", "Name", "Amount", "Status", "Remark", "ID"},
		Right:  []int{2},
	}
	if c == finance.Borrowed {
		l.Title = "Money Borrowed"
	}
	for _, d := range debts {
		l.Rows = append(l.Rows, []string{d.Date.String(), d.Name, f.Format(d.Amount), string(d.Status), d.Remark, d.ID})
	}
	return l
}
