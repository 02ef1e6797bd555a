package finance

import (
	"strings"
	"testing"

	"github.com/etnz/finance/date"
	"github.com/google/go-cmp/cmp"
)

func TestEncodeState_RoundTrip(t *testing.T) {
	d := date.MustParse
	testCases := []struct {
		name  string
		state State
	}{
		{name: "empty", state: State{}},
		{
			name: "full",
			state: State{
				Cash: M(1234.56),
				Bank: M(0.1),
				Incomes: []Income{
					{ID: "i1", Amount: M(500), Date: d("2025-07-01"), Source: "Salary", Remark: "july", Account: Bank},
				},
				Expenses: []Expense{
					{ID: "e1", Amount: M(30.25), Date: d("2025-07-02"), Category: "Grocery", Location: "Market", Account: Cash},
					{ID: "e2", Amount: M(12), Date: d("2025-07-03"), Category: "Transport", Remark: "bus \"42\"", Account: Bank},
				},
				Lent:     []Debt{{ID: "l1", Amount: M(100), Date: d("2025-06-30"), Name: "Alice", Status: Repaid}},
				Borrowed: []Debt{{ID: "b1", Amount: M(50), Date: d("2025-07-04"), Name: "Bob", Remark: "lunch", Status: Outstanding}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := EncodeState(tc.state)
			if err != nil {
				t.Fatalf("EncodeState() unexpected error: %v", err)
			}
			got, err := DecodeState(blob)
			if err != nil {
				t.Fatalf("DecodeState() unexpected error: %v", err)
			}
			want := tc.state
			want.Version = SchemaVersion
			if diff := cmp.Diff(want, got, stateOpts); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			// encoding is deterministic
			again, err := EncodeState(got)
			if err != nil {
				t.Fatalf("EncodeState() unexpected error: %v", err)
			}
			if string(again) != string(blob) {
				t.Errorf("EncodeState is not stable:\n%s\n%s", blob, again)
			}
		})
	}
}

func TestEncodeState_Layout(t *testing.T) {
	blob, err := EncodeState(State{Cash: M(10), Bank: M(2.5)})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"version":1,"bankBalance":2.5,"cashBalance":10,"incomes":[],"expenses":[],"lent":[],"borrowed":[]}`
	if string(blob) != want {
		t.Errorf("EncodeState() =\n%s\nwant\n%s", blob, want)
	}
}

func TestDecodeState_Legacy(t *testing.T) {
	// Layout written by the first releases: no version, no account on some
	// records, amounts as numbers or strings, debts without status.
	legacy := `{
		"cashBalance": 1000,
		"bankBalance": "250.505",
		"incomes": [
			{"id": "1720000000001", "amount": 500, "date": "2025-07-01", "source": "Salary", "remark": "", "sourceType": "bank"},
			{"id": "1720000000002", "amount": 20, "date": "2025-07-02", "source": "Gift", "remark": ""}
		],
		"expenses": [
			{"id": "1720000000003", "amount": "30", "date": "2025-07-03", "category": "Food & Drink", "location": "", "remark": "", "sourceType": "cash"},
			{"id": "1720000000004", "amount": 12.5, "date": "2025-07-04", "category": "Transport", "location": "", "remark": "", "sourceType": "upi"}
		],
		"lent": [{"id": "1720000000005", "amount": 100, "date": "2025-07-05", "name": "Alice", "remark": ""}],
		"borrowed": [{"id": "1720000000006", "amount": 50, "date": "2025-07-06", "name": "Bob", "remark": "", "status": "repaid"}]
	}`

	got, err := DecodeState([]byte(legacy))
	if err != nil {
		t.Fatalf("DecodeState() unexpected error: %v", err)
	}
	d := date.MustParse
	want := State{
		Cash: M(1000),
		Bank: M(250.51),
		Incomes: []Income{
			{ID: "1720000000001", Amount: M(500), Date: d("2025-07-01"), Source: "Salary", Account: Bank},
			{ID: "1720000000002", Amount: M(20), Date: d("2025-07-02"), Source: "Gift", Account: Bank},
		},
		Expenses: []Expense{
			{ID: "1720000000003", Amount: M(30), Date: d("2025-07-03"), Category: "Food & Drink", Account: Cash},
			{ID: "1720000000004", Amount: M(12.5), Date: d("2025-07-04"), Category: "Transport", Account: Bank},
		},
		Lent:     []Debt{{ID: "1720000000005", Amount: M(100), Date: d("2025-07-05"), Name: "Alice", Status: Outstanding}},
		Borrowed: []Debt{{ID: "1720000000006", Amount: M(50), Date: d("2025-07-06"), Name: "Bob", Status: Repaid}},
	}
	if diff := cmp.Diff(want, got, stateOpts); diff != "" {
		t.Errorf("DecodeState() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeState_Errors(t *testing.T) {
	testCases := []struct {
		name string
		blob string
		want string
	}{
		{name: "not json", blob: `garbage`, want: "could not decode"},
		{name: "bad amount", blob: `{"cashBalance": "ten"}`, want: "invalid amount"},
		{name: "bad date", blob: `{"incomes": [{"id": "1", "amount": 1, "date": "01/07/2025"}]}`, want: "invalid date"},
		{name: "future version", blob: `{"version": 99}`, want: "unsupported version 99"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeState([]byte(tc.blob))
			if err == nil {
				t.Fatalf("DecodeState(%s) expected an error", tc.blob)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("DecodeState(%s) error = %q, want it to contain %q", tc.blob, err, tc.want)
			}
		})
	}
}
