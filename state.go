package finance

import "slices"

// SchemaVersion is the version written in every encoded State.
//
// Version 0 is the unversioned layout of the first releases, it decodes unchanged.
const SchemaVersion = 1

// State is the whole ledger: the two balances and the four record collections.
//
// Collections keep insertion order; views sort them by date when needed.
type State struct {
	Version  int
	Cash     Money
	Bank     Money
	Incomes  []Income
	Expenses []Expense
	Lent     []Debt
	Borrowed []Debt
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Incomes = slices.Clone(s.Incomes)
	s.Expenses = slices.Clone(s.Expenses)
	s.Lent = slices.Clone(s.Lent)
	s.Borrowed = slices.Clone(s.Borrowed)
	return s
}

// Balance returns the balance of account a.
func (s State) Balance(a Account) Money {
	if a == Cash {
		return s.Cash
	}
	return s.Bank
}

// Total returns the sum of both balances.
func (s State) Total() Money { return s.Cash.Add(s.Bank) }

func (s *State) balance(a Account) *Money {
	if a == Cash {
		return &s.Cash
	}
	return &s.Bank
}

// credit adds m to account a and rounds both balances.
func (s *State) credit(a Account, m Money) {
	b := s.balance(a)
	*b = b.Add(m)
	s.round()
}

// debit subtracts m from account a and rounds both balances.
func (s *State) debit(a Account, m Money) {
	b := s.balance(a)
	*b = b.Sub(m)
	s.round()
}

func (s *State) round() {
	s.Cash = Round2(s.Cash)
	s.Bank = Round2(s.Bank)
}

// canDebit returns an InsufficientFundsError if m is larger than the balance of a.
func (s State) canDebit(a Account, m Money) error {
	if available := s.Balance(a); m.GreaterThan(available) {
		return &InsufficientFundsError{Account: a, Requested: m, Available: available}
	}
	return nil
}

func (s *State) debts(c Collection) *[]Debt {
	if c == Lent {
		return &s.Lent
	}
	return &s.Borrowed
}

// Len returns the number of records in collection c.
func (s State) Len(c Collection) int {
	switch c {
	case Incomes:
		return len(s.Incomes)
	case Expenses:
		return len(s.Expenses)
	case Lent:
		return len(s.Lent)
	case Borrowed:
		return len(s.Borrowed)
	default:
		return 0
	}
}

func indexByID[T any](records []T, id string, key func(T) string) int {
	return slices.IndexFunc(records, func(r T) bool { return key(r) == id })
}

func incomeID(i Income) string   { return i.ID }
func expenseID(e Expense) string { return e.ID }
func debtID(d Debt) string       { return d.ID }
