package finance

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/finance/date"
)

// UncategorizedCategory groups expenses recorded without a category.
const UncategorizedCategory = "Uncategorized"

// CategoryTotal is the amount spent in one expense category.
type CategoryTotal struct {
	Category string
	Amount   Money
}

// Summary provides an at-a-glance overview of a State. It is derived and
// never persisted.
type Summary struct {
	Cash                Money
	Bank                Money
	Total               Money // Cash + Bank
	TotalExpense        Money
	OutstandingLent     Money // receivables
	OutstandingBorrowed Money // payables
	// ByCategory is sorted by amount descending, then by category name.
	ByCategory []CategoryTotal
}

// NewSummary computes the Summary of s.
func NewSummary(s State) Summary {
	sum := Summary{
		Cash:       s.Cash,
		Bank:       s.Bank,
		Total:      s.Total(),
		ByCategory: ExpenseByCategory(s.Expenses),
	}
	for _, e := range s.Expenses {
		sum.TotalExpense = sum.TotalExpense.Add(e.Amount)
	}
	sum.OutstandingLent = outstandingTotal(s.Lent)
	sum.OutstandingBorrowed = outstandingTotal(s.Borrowed)
	return sum
}

func outstandingTotal(debts []Debt) (total Money) {
	for _, d := range debts {
		if d.Status == Outstanding {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// ExpenseByCategory sums expenses per category, sorted by amount descending
// then by name. Expenses without a category count as UncategorizedCategory.
func ExpenseByCategory(expenses []Expense) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, e := range expenses {
		cat := strings.TrimSpace(e.Category)
		if cat == "" {
			cat = UncategorizedCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, CategoryTotal{Category: cat})
		}
		totals[i].Amount = totals[i].Amount.Add(e.Amount)
	}
	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Amount.Decimal().Cmp(a.Amount.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return totals
}

// byDateDesc returns a copy of records sorted by date, most recent first.
// Records on the same day keep their insertion order.
func byDateDesc[T any](records []T, dateOf func(T) date.Date) []T {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b T) int { return dateOf(b).Compare(dateOf(a)) })
	return sorted
}

// inRange keeps the records dated within r. A zero range keeps everything.
func inRange[T any](records []T, r date.Range, dateOf func(T) date.Date) []T {
	if r.IsZero() {
		return records
	}
	return slices.DeleteFunc(records, func(rec T) bool { return !r.Contains(dateOf(rec)) })
}

// Filter selects the records shown by the list views.
type Filter struct {
	// Range restricts records to a date range. The zero Range selects all dates.
	Range date.Range
	// All includes repaid debts, which are hidden by default.
	All bool
}

// IncomeList returns the incomes matching f, most recent first.
func (s State) IncomeList(f Filter) []Income {
	return inRange(byDateDesc(s.Incomes, func(i Income) date.Date { return i.Date }), f.Range, func(i Income) date.Date { return i.Date })
}

// ExpenseList returns the expenses matching f, most recent first.
func (s State) ExpenseList(f Filter) []Expense {
	return inRange(byDateDesc(s.Expenses, func(e Expense) date.Date { return e.Date }), f.Range, func(e Expense) date.Date { return e.Date })
}

// DebtList returns the debts of collection c matching f, most recent first.
// Unless f.All is set only outstanding debts are listed.
func (s State) DebtList(c Collection, f Filter) []Debt {
	if c != Lent && c != Borrowed {
		return nil
	}
	dateOf := func(d Debt) date.Date { return d.Date }
	list := inRange(byDateDesc(*s.debts(c), dateOf), f.Range, dateOf)
	if !f.All {
		list = slices.DeleteFunc(list, func(d Debt) bool { return d.Status != Outstanding })
	}
	return list
}

// EmptyMessage returns the message displayed when the list view of c is empty.
func EmptyMessage(c Collection) string {
	switch c {
	case Incomes:
		return "No incomes recorded yet."
	case Expenses:
		return "No expenses recorded yet."
	case Lent:
		return "All receivables have been settled."
	case Borrowed:
		return "No outstanding debts. Well done!"
	default:
		return "Nothing to show."
	}
}
