package finance

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jstate is the persisted layout of a State. Keys follow the layout of the
// first releases so that their files still load.
type jstate struct {
	Version  int       `json:"version"`
	Bank     Money     `json:"bankBalance"`
	Cash     Money     `json:"cashBalance"`
	Incomes  []Income  `json:"incomes"`
	Expenses []Expense `json:"expenses"`
	Lent     []Debt    `json:"lent"`
	Borrowed []Debt    `json:"borrowed"`
}

// MarshalJSON encodes the state with a stable key order and empty lists as [].
func (s State) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("version", s.Version)
	w.Append("bankBalance", s.Bank)
	w.Append("cashBalance", s.Cash)
	w.Append("incomes", nonNil(s.Incomes))
	w.Append("expenses", nonNil(s.Expenses))
	w.Append("lent", nonNil(s.Lent))
	w.Append("borrowed", nonNil(s.Borrowed))
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a state.
func (s *State) UnmarshalJSON(data []byte) error {
	var js jstate
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	*s = State{
		Version:  js.Version,
		Cash:     js.Cash,
		Bank:     js.Bank,
		Incomes:  js.Incomes,
		Expenses: js.Expenses,
		Lent:     js.Lent,
		Borrowed: js.Borrowed,
	}
	return nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// EncodeState returns the blob persisted for s. The current SchemaVersion is stamped on it.
func EncodeState(s State) ([]byte, error) {
	s.Version = SchemaVersion
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("could not encode ledger state: %w", err)
	}
	return data, nil
}

// DecodeState parses a blob produced by EncodeState, or by the first releases.
//
// Records written without an account are normalized to Bank, the account those
// releases applied to anything that was not explicitly cash.
func DecodeState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("could not decode ledger state: %w", err)
	}
	if s.Version > SchemaVersion {
		return State{}, fmt.Errorf("could not decode ledger state: unsupported version %d, this program reads up to %d", s.Version, SchemaVersion)
	}
	for i := range s.Incomes {
		if !s.Incomes[i].Account.Valid() {
			s.Incomes[i].Account = Bank
		}
	}
	for i := range s.Expenses {
		if !s.Expenses[i].Account.Valid() {
			s.Expenses[i].Account = Bank
		}
	}
	for _, debts := range [][]Debt{s.Lent, s.Borrowed} {
		for i := range debts {
			if debts[i].Status == "" {
				debts[i].Status = Outstanding
			}
		}
	}
	s.round()
	return s, nil
}
