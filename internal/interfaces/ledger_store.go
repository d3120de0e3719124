package interfaces

import (
	"context"
	"errors"

	"github.com/sheikh-saqib/spendlog/internal/models"
)

var (
	// ErrNotFound is returned by stores when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by stores when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("conflict")
)

// PostingQuery selects postings. Zero values disable a filter.
type PostingQuery struct {
	Window   *models.Window // nil means every posting ever recorded
	LedgerID int64          // only postings touching this ledger
	Limit    int            // newest first, 0 for no limit
}

type LedgerStore interface {
	Setup(ctx context.Context) error
	CreateLedger(ctx context.Context, ledger models.Ledger) (models.Ledger, error)
	LedgerByCode(ctx context.Context, code string) (models.Ledger, error)
	Ledgers(ctx context.Context) ([]models.Ledger, error)
	SavePosting(ctx context.Context, posting models.Posting) (models.Posting, error)
	Postings(ctx context.Context, q PostingQuery) ([]models.Posting, error)
	Clear(ctx context.Context) error
}
