package models

import (
	"strings"
	"time"
)

// Ledger represents a named account that postings move value between
type Ledger struct {
	ID          int64     // store assigned, never reused
	Code        string    // short unique key used by every command (e.g. "CASH")
	Name        string    // display label
	Description string    // optional free text
	Sort        string    // grouping hint, not interpreted
	Kind        Kind      // decides the sign convention used in reports
	CreatedAt   time.Time // timestamp
	UpdatedAt   time.Time
}

// Kind classifies a ledger. Only Liability changes how its activity is summed,
// every other value is treated as a normal (asset or expense like) ledger.
type Kind string

const (
	Liability Kind = "LIABILITY"
	Asset     Kind = "ASSET"
	Expense   Kind = "EXPENSE"
)

// NormalizeKind upper-cases and trims a user supplied kind.
func NormalizeKind(s string) Kind {
	return Kind(strings.ToUpper(strings.TrimSpace(s)))
}

// IsLiability reports whether the ledger kind nets credits against debits.
func (k Kind) IsLiability() bool { return k == Liability }

func (k Kind) String() string { return string(k) }
