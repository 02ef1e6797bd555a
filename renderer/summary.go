package renderer

import (
	"github.com/etnz/finance"
	"github.com/shopspring/decimal"
)

// Dashboard is the at-a-glance view of the ledger, with every amount already
// formatted.
type Dashboard struct {
	Title      string
	Total      string
	Cash       string
	Bank       string
	Expenses   string
	Lent       string // outstanding receivables
	Borrowed   string // outstanding payables
	Categories []CategoryRow
}

// CategoryRow is one line of the spending breakdown.
type CategoryRow struct {
	Name   string
	Amount string
	Share  string // share of all expenses, e.g. "12.5%"
	Color  string // chart colour, e.g. "#FF6384"
}

// NewDashboard formats s with f. color returns the chart colour of a category.
func NewDashboard(s finance.Summary, f finance.Formatter, color func(category string) string) *Dashboard {
	d := &Dashboard{
		Title:    "Finance Summary",
		Total:    f.Format(s.Total),
		Cash:     f.Format(s.Cash),
		Bank:     f.Format(s.Bank),
		Expenses: f.Format(s.TotalExpense),
		Lent:     f.Format(s.OutstandingLent),
		Borrowed: f.Format(s.OutstandingBorrowed),
	}
	total := s.TotalExpense.Decimal()
	for _, c := range s.ByCategory {
		share := decimal.Zero
		if !total.IsZero() {
			share = c.Amount.Decimal().Div(total).Shift(2)
		}
		row := CategoryRow{
			Name:   c.Category,
			Amount: f.Format(c.Amount),
			Share:  share.StringFixed(1) + "%",
		}
		if color != nil {
			row.Color = color(c.Category)
		}
		d.Categories = append(d.Categories, row)
	}
	return d
}
