package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline counts the markdown nodes of interest in a rendered document.
type outline struct {
	headings int
	tables   int
	rows     int   // body rows, all tables together
	cells    []int // cells per body row
}

func parse(t *testing.T, doc string) outline {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader([]byte(doc)))

	var o outline
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			o.headings++
		case east.KindTable:
			o.tables++
		case east.KindTableRow:
			o.rows++
			o.cells = append(o.cells, n.ChildCount())
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return o
}

func sampleSummary() finance.Summary {
	return finance.NewSummary(finance.State{
		Cash: finance.M(120.5),
		Bank: finance.M(1000),
		Expenses: []finance.Expense{
			{Amount: finance.M(150), Category: "Bills & Rent"},
			{Amount: finance.M(50), Category: "Food & Drink"},
		},
		Lent: []finance.Debt{{Amount: finance.M(100), Status: finance.Outstanding}},
	})
}

func TestRenderSummary(t *testing.T) {
	colors := map[string]string{"Bills & Rent": "#FFCE56", "Food & Drink": "#FF6384"}
	d := NewDashboard(sampleSummary(), finance.NewFormatter("INR"), func(c string) string { return colors[c] })

	got := RenderSummary(d, SummaryRenderOptions{})
	for _, want := range []string{
		"# Finance Summary",
		"**Total Balance: ₹ 1,120.50**",
		"| Cash | ₹ 120.50 |",
		"| Receivables (lent) | ₹ 100.00 |",
		"| Payables (borrowed) | ₹ 0.00 |",
		"## Expenses: ₹ 200.00",
		"| Bills & Rent | ₹ 150.00 | 75.0% | #FFCE56 |",
		"| Food & Drink | ₹ 50.00 | 25.0% | #FF6384 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderSummary() missing %q in:\n%s", want, got)
		}
	}
	o := parse(t, got)
	if o.headings != 3 || o.tables != 3 {
		t.Errorf("RenderSummary() has %d headings and %d tables, want 3 and 3:\n%s", o.headings, o.tables, got)
	}
}

func TestRenderSummary_Options(t *testing.T) {
	d := NewDashboard(sampleSummary(), finance.NewFormatter("INR"), nil)
	got := RenderSummary(d, SummaryRenderOptions{SkipCategories: true})
	if strings.Contains(got, "## Expenses") {
		t.Errorf("RenderSummary(SkipCategories) still renders the breakdown:\n%s", got)
	}
	if o := parse(t, got); o.tables != 2 {
		t.Errorf("RenderSummary(SkipCategories) has %d tables, want 2", o.tables)
	}

	empty := NewDashboard(finance.NewSummary(finance.State{}), finance.NewFormatter("INR"), nil)
	got = RenderSummary(empty, SummaryRenderOptions{})
	if !strings.Contains(got, "No expense data to display.") {
		t.Errorf("RenderSummary(empty) misses the empty message:\n%s", got)
	}
}

func TestRenderList(t *testing.T) {
	f := finance.NewFormatter("INR")
	expenses := []finance.Expense{
		{ID: "e2", Amount: finance.M(12), Date: date.New(2025, 7, 3), Category: "Transport", Remark: "bus | tram", Account: finance.Bank},
		{ID: "e1", Amount: finance.M(30.25), Date: date.New(2025, 7, 2), Category: "Grocery", Location: "Market\nstreet", Account: finance.Cash},
	}
	l := ExpenseList(expenses, f)
	l.Subtitle = "monthly 2025-07"
	got := RenderList(l)

	for _, want := range []string{"# Expenses", "_monthly 2025-07_", "| 2025-07-02 | Grocery | Market street | Cash | ₹ 30.25 |  | e1 |", `bus \| tram`} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderList() missing %q in:\n%s", want, got)
		}
	}

	o := parse(t, got)
	if o.tables != 1 || o.rows != 2 {
		t.Fatalf("RenderList() has %d tables and %d rows, want 1 and 2:\n%s", o.tables, o.rows, got)
	}
	for i, n := range o.cells {
		if n != len(l.Header) {
			t.Errorf("row %d has %d cells, want %d", i, n, len(l.Header))
		}
	}
}

func TestRenderList_Empty(t *testing.T) {
	f := finance.NewFormatter("INR")
	testCases := []struct {
		list *List
		want string
	}{
		{IncomeList(nil, f), "No incomes recorded yet."},
		{ExpenseList(nil, f), "No expenses recorded yet."},
		{DebtList(finance.Lent, nil, f), "All receivables have been settled."},
		{DebtList(finance.Borrowed, nil, f), "No outstanding debts. Well done!"},
	}
	for _, tc := range testCases {
		got := RenderList(tc.list)
		if !strings.Contains(got, tc.want) {
			t.Errorf("RenderList(%s) = %q, want it to contain %q", tc.list.Title, got, tc.want)
		}
		if o := parse(t, got); o.tables != 0 {
			t.Errorf("RenderList(%s) renders a table for an empty list", tc.list.Title)
		}
	}
}

func TestDebtList(t *testing.T) {
	debts := []finance.Debt{{ID: "b1", Amount: finance.M(50), Date: date.New(2025, 7, 6), Name: "Bob", Status: finance.Outstanding}}
	l := DebtList(finance.Borrowed, debts, finance.NewFormatter("INR"))
	if l.Title != "Money Borrowed" {
		t.Errorf("Title = %q, want Money Borrowed", l.Title)
	}
	got := RenderList(l)
	if !strings.Contains(got, "| 2025-07-06 | Bob | ₹ 50.00 | outstanding |  | b1 |") {
		t.Errorf("RenderList() =\n%s", got)
	}
	if !strings.Contains(got, "|:---|:---|---:|:---|:---|:---|") {
		t.Errorf("RenderList() does not right align the amount column:\n%s", got)
	}
}
