package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned for amounts that are not strictly positive numbers.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrLedgerNotFound is returned when no ledger has the requested code.
	ErrLedgerNotFound = errors.New("ledger not found")

	// ErrDuplicateLedger is returned when a ledger code is already taken.
	ErrDuplicateLedger = errors.New("ledger already exists")

	// ErrInvalidLedger is returned when a new ledger misses a required field.
	ErrInvalidLedger = errors.New("invalid ledger")

	// ErrInvalidNarration is returned for a posting without narration.
	ErrInvalidNarration = errors.New("narration is required")

	// ErrInvalidCap is returned for a daily cap that is not a positive number.
	ErrInvalidCap = errors.New("invalid cap")
)

// StoreError wraps any failure reported by the store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("database error: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
