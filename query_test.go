package finance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuery(t *testing.T) {
	l, _ := newTestLedger(t)
	mustDo(t)(l.SetBalances(M(1000), M(50)))
	mustDo(t)(l.AddExpense(Expense{Amount: M(120), Category: "Grocery", Account: Cash}))
	mustDo(t)(l.AddExpense(Expense{Amount: M(30), Category: "Transport", Account: Cash}))
	mustDo(t)(l.AddDebt(Lent, Debt{Amount: M(10), Name: "Alice"}))

	tests := []struct {
		path string
		want any
	}{
		{"$.cashBalance", 840.0},
		{"$.bankBalance", 50.0},
		{`$.expenses[?(@.category == "Grocery")].amount`, []any{120.0}},
		{"$.lent[0].name", "Alice"},
		{"$.lent[0].status", "outstanding"},
	}
	for _, test := range tests {
		got, err := Query(l.State(), test.path)
		if err != nil {
			t.Errorf("Query(%q) unexpected error: %v", test.path, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Query(%q) mismatch (-want +got):\n%s", test.path, diff)
		}
	}

	if _, err := Query(l.State(), "$.expenses[?(@.amount >"); err == nil {
		t.Error("Query() with an invalid expression got no error")
	}
}
