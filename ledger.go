package finance

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/etnz/finance/date"
	"github.com/google/uuid"
)

// IDGenerator returns a new record identifier, unique across the ledger lifetime.
type IDGenerator func() string

// Result describes a successful command.
type Result struct {
	ID      string // ID of the record created or affected, if any.
	Summary string // human readable summary, e.g. "Income of ₹ 500.00 added to Cash."
}

// Ledger owns the ledger State and applies commands to it.
//
// Every command validates fully, applies its effect to a copy of the state,
// saves the copy through the Store and only then makes it current and notifies
// the observers. A rejected command or a failed save leaves the Ledger untouched.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	state     State
	store     Store
	newID     IDGenerator
	today     func() date.Date
	fmt       Formatter
	observers []func(State)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator replaces the default uuid based identifiers.
func WithIDGenerator(gen IDGenerator) Option { return func(l *Ledger) { l.newID = gen } }

// WithClock replaces date.Today, used to date records without a date.
func WithClock(today func() date.Date) Option { return func(l *Ledger) { l.today = today } }

// WithCurrency sets the ISO currency used in command summaries.
func WithCurrency(code string) Option { return func(l *Ledger) { l.fmt = NewFormatter(code) } }

// Open loads the ledger from store.
//
// An empty store opens an empty ledger. A stored blob that cannot be decoded is
// logged and replaced by an empty ledger. Only a failing store is an error.
func Open(store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		newID: uuid.NewString,
		today: date.Today,
		fmt:   defaultFormatter,
	}
	for _, opt := range opts {
		opt(l)
	}

	blob, err := store.Load()
	switch {
	case errors.Is(err, ErrNoState):
		l.state = State{Version: SchemaVersion}
	case err != nil:
		return nil, &PersistenceError{Op: "load", Err: err}
	default:
		s, err := DecodeState(blob)
		if err != nil {
			log.Printf("warning, ledger state is unreadable, starting from an empty ledger instead: %v", err)
			s = State{Version: SchemaVersion}
		}
		l.state = s
	}
	return l, nil
}

// State returns a copy of the current state.
func (l *Ledger) State() State { return l.state.Clone() }

// Formatter returns the Formatter used in command summaries.
func (l *Ledger) Formatter() Formatter { return l.fmt }

// Today returns the date the ledger stamps on undated records.
func (l *Ledger) Today() date.Date { return l.today() }

// Subscribe registers fn to be called with the new state after every successful command.
func (l *Ledger) Subscribe(fn func(State)) {
	l.observers = append(l.observers, fn)
}

// commit saves next and makes it the current state.
func (l *Ledger) commit(next State, res Result) (Result, error) {
	blob, err := EncodeState(next)
	if err != nil {
		return Result{}, &PersistenceError{Op: "save", Err: err}
	}
	if err := l.store.Save(blob); err != nil {
		log.Printf("could not save ledger, command %q discarded: %v", res.Summary, err)
		return Result{}, &PersistenceError{Op: "save", Err: err}
	}
	next.Version = SchemaVersion
	l.state = next
	for _, fn := range l.observers {
		fn(l.state.Clone())
	}
	return res, nil
}

// positive validates a record amount. Records are stored as given and
// balances are rounded to cents, so a record amount must already be in cents
// for its reversal to restore the balances exactly.
func positive(field string, m Money) error {
	if !m.IsPositive() {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be positive, got %s", m)}
	}
	if !m.Equal(Round2(m)) {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must have at most 2 decimals, got %s", m.Decimal())}
	}
	return nil
}

func validAccount(a Account) error {
	if !a.Valid() {
		return &ValidationError{Field: "account", Reason: fmt.Sprintf("unknown account %q, want cash or bank", a)}
	}
	return nil
}

// SetBalances overwrites both balances. It is a manual correction: no record
// is created and nothing is reversed.
func (l *Ledger) SetBalances(cash, bank Money) (Result, error) {
	if cash.IsNegative() {
		return Result{}, &ValidationError{Field: "cash", Reason: fmt.Sprintf("must not be negative, got %s", cash)}
	}
	if bank.IsNegative() {
		return Result{}, &ValidationError{Field: "bank", Reason: fmt.Sprintf("must not be negative, got %s", bank)}
	}
	next := l.state.Clone()
	next.Cash, next.Bank = Round2(cash), Round2(bank)
	return l.commit(next, Result{Summary: "Balances updated successfully!"})
}

// AddIncome records in and credits its account. The ID is assigned by the
// ledger and a zero Date is replaced by today.
func (l *Ledger) AddIncome(in Income) (Result, error) {
	if err := positive("amount", in.Amount); err != nil {
		return Result{}, err
	}
	if err := validAccount(in.Account); err != nil {
		return Result{}, err
	}
	if in.Date.IsZero() {
		in.Date = l.today()
	}
	in.ID = l.newID()

	next := l.state.Clone()
	next.Incomes = append(next.Incomes, in)
	next.credit(in.Account, in.Amount)

	to := "Cash"
	if in.Account == Bank {
		to = "Bank Balance"
	}
	return l.commit(next, Result{ID: in.ID, Summary: fmt.Sprintf("Income of %s added to %s.", l.fmt.Format(in.Amount), to)})
}

// AddExpense records ex and debits its account, provided the balance covers it.
func (l *Ledger) AddExpense(ex Expense) (Result, error) {
	if err := positive("amount", ex.Amount); err != nil {
		return Result{}, err
	}
	ex.Category = strings.TrimSpace(ex.Category)
	if ex.Category == "" {
		return Result{}, &ValidationError{Field: "category", Reason: "is missing"}
	}
	if err := validAccount(ex.Account); err != nil {
		return Result{}, err
	}
	if err := l.state.canDebit(ex.Account, ex.Amount); err != nil {
		return Result{}, err
	}
	if ex.Date.IsZero() {
		ex.Date = l.today()
	}
	ex.ID = l.newID()

	next := l.state.Clone()
	next.Expenses = append(next.Expenses, ex)
	next.debit(ex.Account, ex.Amount)

	from := "Cash"
	if ex.Account == Bank {
		from = "Bank/UPI"
	}
	return l.commit(next, Result{ID: ex.ID, Summary: fmt.Sprintf("Expense of %s deducted from %s.", l.fmt.Format(ex.Amount), from)})
}

// AddDebt records d in the Lent or Borrowed collection as outstanding.
//
// Lending debits the DebtAccount, provided it covers the amount; borrowing
// credits it.
func (l *Ledger) AddDebt(kind Collection, d Debt) (Result, error) {
	if kind != Lent && kind != Borrowed {
		return Result{}, &ValidationError{Field: "collection", Reason: fmt.Sprintf("%s is not a debt collection", kind)}
	}
	if err := positive("amount", d.Amount); err != nil {
		return Result{}, err
	}
	if kind == Lent {
		if err := l.state.canDebit(DebtAccount, d.Amount); err != nil {
			return Result{}, err
		}
	}
	if d.Date.IsZero() {
		d.Date = l.today()
	}
	d.ID = l.newID()
	d.Status = Outstanding

	next := l.state.Clone()
	debts := next.debts(kind)
	*debts = append(*debts, d)

	var summary string
	switch kind {
	case Lent:
		next.debit(DebtAccount, d.Amount)
		summary = fmt.Sprintf("%s lent to %s. %s deducted.", l.fmt.Format(d.Amount), d.Name, DebtAccount.Label())
	case Borrowed:
		next.credit(DebtAccount, d.Amount)
		summary = fmt.Sprintf("%s borrowed from %s. %s added.", l.fmt.Format(d.Amount), d.Name, DebtAccount.Label())
	}
	return l.commit(next, Result{ID: d.ID, Summary: summary})
}

// Delete removes record id from collection c and reverses its balance effect:
//
//   - incomes: debit the income account
//   - expenses: credit the expense account
//   - lent: credit the DebtAccount
//   - borrowed: debit the DebtAccount
//
// A repaid debt cannot be deleted. A reversal that would make a balance
// negative is refused with an InsufficientFundsError.
func (l *Ledger) Delete(c Collection, id string) (Result, error) {
	next := l.state.Clone()
	notFound := &NotFoundError{Collection: c, ID: id, Reason: "missing"}

	switch c {
	case Incomes:
		i := indexByID(next.Incomes, id, incomeID)
		if i < 0 {
			return Result{}, notFound
		}
		rec := next.Incomes[i]
		if err := next.canDebit(rec.Account, rec.Amount); err != nil {
			return Result{}, err
		}
		next.debit(rec.Account, rec.Amount)
		next.Incomes = slices.Delete(next.Incomes, i, i+1)

	case Expenses:
		i := indexByID(next.Expenses, id, expenseID)
		if i < 0 {
			return Result{}, notFound
		}
		rec := next.Expenses[i]
		next.credit(rec.Account, rec.Amount)
		next.Expenses = slices.Delete(next.Expenses, i, i+1)

	case Lent, Borrowed:
		debts := next.debts(c)
		i := indexByID(*debts, id, debtID)
		if i < 0 {
			return Result{}, notFound
		}
		rec := (*debts)[i]
		if rec.Status == Repaid {
			return Result{}, &NotFoundError{Collection: c, ID: id, Reason: "already repaid"}
		}
		if c == Lent {
			next.credit(DebtAccount, rec.Amount)
		} else {
			if err := next.canDebit(DebtAccount, rec.Amount); err != nil {
				return Result{}, err
			}
			next.debit(DebtAccount, rec.Amount)
		}
		*debts = slices.Delete(*debts, i, i+1)

	default:
		return Result{}, &ValidationError{Field: "collection", Reason: fmt.Sprintf("unknown collection %s", c)}
	}

	return l.commit(next, Result{ID: id, Summary: "Record deleted and balances reversed successfully!"})
}
