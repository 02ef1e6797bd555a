package finance

import (
	"errors"
	"fmt"
	"testing"

	"github.com/etnz/finance/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// stateOpts compares states by value: amounts numerically and empty lists equal to nil ones.
var stateOpts = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
	cmpopts.EquateEmpty(),
}

// sequentialIDs returns an IDGenerator producing "id-1", "id-2", ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// fixedDay is the day the test ledgers believe it is.
var fixedDay = date.New(2025, 7, 15)

// newTestLedger opens a ledger on an empty MemoryStore, with predictable ids and clock.
func newTestLedger(t *testing.T) (*Ledger, *MemoryStore) {
	t.Helper()
	store := new(MemoryStore)
	l, err := Open(store, WithIDGenerator(sequentialIDs()), WithClock(func() date.Date { return fixedDay }))
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	return l, store
}

// mustDo returns a function that fails the test if a command fails, and
// returns its result. It is used as mustDo(t)(l.AddIncome(...)).
func mustDo(t *testing.T) func(Result, error) Result {
	t.Helper()
	return func(res Result, err error) Result {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return res
	}
}

// wantErr fails the test unless err matches target.
func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("got error %v, want %v", err, target)
	}
}

// checkBalances fails the test unless l holds the given balances.
func checkBalances(t *testing.T, l *Ledger, cash, bank float64) {
	t.Helper()
	s := l.State()
	if !s.Cash.Equal(M(cash)) || !s.Bank.Equal(M(bank)) {
		t.Errorf("balances are cash=%s bank=%s, want cash=%s bank=%s", s.Cash, s.Bank, M(cash), M(bank))
	}
}
