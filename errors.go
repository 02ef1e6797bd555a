package finance

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per error kind. Every typed error below matches its
// sentinel with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("not found")
	ErrPersistence       = errors.New("persistence error")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientFundsError reports a debit larger than the account balance.
type InsufficientFundsError struct {
	Account   Account
	Requested Money
	Available Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested %s, available %s", e.Account.Label(), e.Requested, e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }

// NotFoundError reports a record missing from its collection, or a debt that
// cannot transition anymore.
type NotFoundError struct {
	Collection Collection
	ID         string
	Reason     string // "missing" or "already repaid"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record %q: %s", e.Collection, e.ID, e.Reason)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError reports a Store failure. The in-memory state is left as it
// was before the command.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not %s ledger state: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
