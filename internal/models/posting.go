package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting represents one double-entry movement of value from the credited
// ledger (the patron) to the debited ledger (the outlay).
type Posting struct {
	ID         int64
	CrFrom     int64           // credited ledger id, the source of funds
	DbTo       int64           // debited ledger id, where the money went
	CrFromCode string          // filled by stores on read
	DbToCode   string          // filled by stores on read
	Amount     decimal.Decimal // always > 0
	Narration  string
	CreatedAt  time.Time // zero on insert means "use the store clock"
	UpdatedAt  time.Time
}

// Touches reports whether the ledger is one of the two ends of the posting.
func (p Posting) Touches(ledgerID int64) bool {
	return p.CrFrom == ledgerID || p.DbTo == ledgerID
}

// Counterparty returns the code of the end that is not ledgerID.
// A posting from a ledger to itself returns that ledger's own code.
func (p Posting) Counterparty(ledgerID int64) string {
	if p.CrFrom == ledgerID {
		return p.DbToCode
	}
	return p.CrFromCode
}
