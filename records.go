package finance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/finance/date"
)

// Account identifies one of the two liquid balances.
type Account string

// Accounts.
const (
	Cash Account = "cash"
	Bank Account = "bank"
)

// DebtAccount is the account moved by lending and borrowing.
//
// Debts are always settled in cash when they are created; only repayments
// let the user choose the account.
const DebtAccount = Cash

// ParseAccount parses "cash" or "bank". "upi" is accepted as an alias for bank.
func ParseAccount(s string) (Account, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return Cash, nil
	case "bank", "upi":
		return Bank, nil
	default:
		return "", &ValidationError{Field: "account", Reason: fmt.Sprintf("unknown account %q, want cash or bank", s)}
	}
}

// Valid reports whether a is a known account.
func (a Account) Valid() bool { return a == Cash || a == Bank }

// Label returns the account name as displayed to the user.
func (a Account) Label() string {
	switch a {
	case Cash:
		return "Cash"
	case Bank:
		return "Bank"
	default:
		return string(a)
	}
}

// Collection identifies one of the four record lists of the ledger.
type Collection int

// Collections. Each one carries its own balance effect, see Ledger.Delete.
const (
	Incomes Collection = iota
	Expenses
	Lent
	Borrowed
)

// Collections lists all collections in display order.
var Collections = []Collection{Incomes, Expenses, Lent, Borrowed}

func (c Collection) String() string {
	switch c {
	case Incomes:
		return "incomes"
	case Expenses:
		return "expenses"
	case Lent:
		return "lent"
	case Borrowed:
		return "borrowed"
	default:
		return fmt.Sprintf("collection(%d)", int(c))
	}
}

// ParseCollection parses a collection name. Singular forms are accepted.
func ParseCollection(s string) (Collection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "incomes", "income":
		return Incomes, nil
	case "expenses", "expense":
		return Expenses, nil
	case "lent", "lend":
		return Lent, nil
	case "borrowed", "borrow":
		return Borrowed, nil
	default:
		return 0, &ValidationError{Field: "collection", Reason: fmt.Sprintf("unknown collection %q", s)}
	}
}

// DebtStatus is the lifecycle state of a Debt.
type DebtStatus string

// Debt statuses. Repaid is terminal.
const (
	Outstanding DebtStatus = "outstanding"
	Repaid      DebtStatus = "repaid"
)

// Income is money received on an account.
type Income struct {
	ID      string    `json:"id"`
	Amount  Money     `json:"amount"`
	Date    date.Date `json:"date"`
	Source  string    `json:"source"`
	Remark  string    `json:"remark"`
	Account Account   `json:"sourceType"`
}

// Expense is money spent from an account.
type Expense struct {
	ID       string    `json:"id"`
	Amount   Money     `json:"amount"`
	Date     date.Date `json:"date"`
	Category string    `json:"category"`
	Location string    `json:"location"`
	Remark   string    `json:"remark"`
	Account  Account   `json:"sourceType"`
}

// Debt is money lent to or borrowed from someone.
//
// Whether it is a receivable or a payable depends on the collection that holds it.
type Debt struct {
	ID     string     `json:"id"`
	Amount Money      `json:"amount"`
	Date   date.Date  `json:"date"`
	Name   string     `json:"name"`
	Remark string     `json:"remark"`
	Status DebtStatus `json:"status"`
}

// MarshalJSON writes the keys in a stable order.
func (i Income) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", i.ID)
	w.Append("amount", i.Amount)
	w.Append("date", i.Date)
	w.Append("source", i.Source)
	w.Append("remark", i.Remark)
	w.Append("sourceType", i.Account)
	return w.MarshalJSON()
}

// MarshalJSON writes the keys in a stable order.
func (e Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("amount", e.Amount)
	w.Append("date", e.Date)
	w.Append("category", e.Category)
	w.Append("location", e.Location)
	w.Append("remark", e.Remark)
	w.Append("sourceType", e.Account)
	return w.MarshalJSON()
}

// MarshalJSON writes the keys in a stable order.
func (d Debt) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", d.ID)
	w.Append("amount", d.Amount)
	w.Append("date", d.Date)
	w.Append("name", d.Name)
	w.Append("remark", d.Remark)
	w.Append("status", d.Status)
	return w.MarshalJSON()
}

// check the records implement the json.Marshaler interface.
var (
	_ json.Marshaler = Income{}
	_ json.Marshaler = Expense{}
	_ json.Marshaler = Debt{}
)
