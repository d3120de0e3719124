package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces"
	"github.com/sheikh-saqib/spendlog/internal/models"
)

// Resolve returns the ledger with exactly that code.
func (l *Ledger) Resolve(ctx context.Context, code string) (models.Ledger, error) {
	ledger, err := l.store.LedgerByCode(ctx, code)
	if errors.Is(err, interfaces.ErrNotFound) {
		return models.Ledger{}, fmt.Errorf("%w: %q", ErrLedgerNotFound, code)
	}
	if err != nil {
		return models.Ledger{}, storeError("resolve ledger", err)
	}
	return ledger, nil
}

// Column widths of the ledgers table.
const (
	maxCode = 10
	maxName = 100
	maxSort = 10
	maxKind = 20
)

// AddLedger validates and stores a new ledger. The kind is normalized to
// upper case and the code must not be taken yet.
func (l *Ledger) AddLedger(ctx context.Context, ledger models.Ledger) (models.Ledger, error) {
	ledger.Code = strings.TrimSpace(ledger.Code)
	ledger.Kind = models.NormalizeKind(string(ledger.Kind))

	for _, field := range []struct {
		name, value string
		max         int
	}{
		{"code", ledger.Code, maxCode},
		{"name", ledger.Name, maxName},
		{"sort", ledger.Sort, maxSort},
		{"kind", string(ledger.Kind), maxKind},
	} {
		switch {
		case strings.TrimSpace(field.value) == "":
			return models.Ledger{}, fmt.Errorf("%w: %s is required", ErrInvalidLedger, field.name)
		case utf8.RuneCountInString(field.value) > field.max:
			return models.Ledger{}, fmt.Errorf("%w: %s %q is longer than %d characters", ErrInvalidLedger, field.name, field.value, field.max)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.store.LedgerByCode(ctx, ledger.Code)
	switch {
	case err == nil:
		return models.Ledger{}, fmt.Errorf("%w: %q", ErrDuplicateLedger, ledger.Code)
	case !errors.Is(err, interfaces.ErrNotFound):
		return models.Ledger{}, storeError("check ledger code", err)
	}

	created, err := l.store.CreateLedger(ctx, ledger)
	if errors.Is(err, interfaces.ErrConflict) {
		// another process won the race, the UNIQUE constraint caught it
		return models.Ledger{}, fmt.Errorf("%w: %q", ErrDuplicateLedger, ledger.Code)
	}
	if err != nil {
		return models.Ledger{}, storeError("create ledger", err)
	}

	l.log.WithField("code", created.Code).Debug("ledger added")
	return created, nil
}

// Ledgers returns every ledger ordered by code.
func (l *Ledger) Ledgers(ctx context.Context) ([]models.Ledger, error) {
	ledgers, err := l.store.Ledgers(ctx)
	if err != nil {
		return nil, storeError("list ledgers", err)
	}
	return ledgers, nil
}

// Setup creates the store schema if it does not exist yet.
func (l *Ledger) Setup(ctx context.Context) error {
	if err := l.store.Setup(ctx); err != nil {
		return storeError("setup", err)
	}
	return nil
}

// Clear deletes every posting and ledger.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.Clear(ctx); err != nil {
		return storeError("clear", err)
	}
	l.log.Info("all ledgers and postings deleted")
	return nil
}
