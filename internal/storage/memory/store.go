package memory

import (
	"context" // standard Go package for request-scoped context (timeouts, cancellation)
	"fmt"
	"sort"
	"sync" // standard Go package for concurrency primitives like Mutex
	"time"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/spendlog/internal/models"                // domain models: Ledger, Posting
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It keeps ledgers and postings in slices and is safe for concurrent use.
type MemoryLedgerStore struct {
	mu       sync.Mutex       // mutex to protect the slices below
	ledgers  []models.Ledger  // every ledger, in creation order
	postings []models.Posting // every posting, in insertion order
	nextID   int64            // last id handed out, shared by both relations
	now      func() time.Time // store clock, used when a posting has no explicit date
}

// Option configures a MemoryLedgerStore.
type Option func(*MemoryLedgerStore)

// WithClock replaces the store clock, tests use it to pin "now".
func WithClock(now func() time.Time) Option {
	return func(m *MemoryLedgerStore) { m.now = now }
}

// NewMemoryLedgerStore creates and returns a new MemoryLedgerStore instance
func NewMemoryLedgerStore(opts ...Option) *MemoryLedgerStore {
	m := &MemoryLedgerStore{
		ledgers:  make([]models.Ledger, 0),
		postings: make([]models.Posting, 0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Setup has nothing to create in memory.
func (m *MemoryLedgerStore) Setup(ctx context.Context) error { return nil }

// CreateLedger stores a new ledger and returns it with its id.
// Codes are unique, like the UNIQUE constraint of the SQL schema.
func (m *MemoryLedgerStore) CreateLedger(ctx context.Context, ledger models.Ledger) (models.Ledger, error) {

	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits (even if error occurs)

	for _, l := range m.ledgers {
		if l.Code == ledger.Code {
			return models.Ledger{}, fmt.Errorf("ledger code %q: %w", ledger.Code, interfaces.ErrConflict)
		}
	}

	m.nextID++
	ledger.ID = m.nextID
	ledger.CreatedAt = m.now().UTC()
	ledger.UpdatedAt = ledger.CreatedAt
	m.ledgers = append(m.ledgers, ledger)
	return ledger, nil
}

// LedgerByCode returns the ledger with that exact code, or interfaces.ErrNotFound.
func (m *MemoryLedgerStore) LedgerByCode(ctx context.Context, code string) (models.Ledger, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.ledgers {
		if l.Code == code {
			return l, nil
		}
	}
	return models.Ledger{}, interfaces.ErrNotFound
}

// Ledgers returns a copy of all ledgers ordered by code.
func (m *MemoryLedgerStore) Ledgers(ctx context.Context) ([]models.Ledger, error) {

	m.mu.Lock()         // lock to prevent concurrent modification while reading
	defer m.mu.Unlock() // unlock automatically at the end

	// return a copy so external code can't modify internal state
	copied := make([]models.Ledger, len(m.ledgers))
	copy(copied, m.ledgers)
	sort.SliceStable(copied, func(i, j int) bool { return copied[i].Code < copied[j].Code })
	return copied, nil
}

// SavePosting appends a posting. Both ends must reference existing ledgers.
func (m *MemoryLedgerStore) SavePosting(ctx context.Context, posting models.Posting) (models.Posting, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	from, ok := m.ledgerByID(posting.CrFrom)
	if !ok {
		return models.Posting{}, fmt.Errorf("cr_from %d: %w", posting.CrFrom, interfaces.ErrNotFound)
	}
	to, ok := m.ledgerByID(posting.DbTo)
	if !ok {
		return models.Posting{}, fmt.Errorf("db_to %d: %w", posting.DbTo, interfaces.ErrNotFound)
	}

	m.nextID++
	posting.ID = m.nextID
	posting.CrFromCode = from.Code
	posting.DbToCode = to.Code
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = m.now()
	}
	posting.CreatedAt = posting.CreatedAt.UTC()
	posting.UpdatedAt = posting.CreatedAt

	m.postings = append(m.postings, posting) // append the new posting to the slice
	return posting, nil
}

// Postings returns the postings matching q, newest first.
func (m *MemoryLedgerStore) Postings(ctx context.Context, q interfaces.PostingQuery) ([]models.Posting, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.Posting
	for _, p := range m.postings {
		if q.Window != nil && !q.Window.Contains(p.CreatedAt) {
			continue
		}
		if q.LedgerID != 0 && !p.Touches(q.LedgerID) {
			continue
		}
		result = append(result, p)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

// Clear drops every posting and ledger.
func (m *MemoryLedgerStore) Clear(ctx context.Context) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.postings = m.postings[:0]
	m.ledgers = m.ledgers[:0]
	return nil
}

// ledgerByID must be called with mu held.
func (m *MemoryLedgerStore) ledgerByID(id int64) (models.Ledger, bool) {
	for _, l := range m.ledgers {
		if l.ID == id {
			return l, true
		}
	}
	return models.Ledger{}, false
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
