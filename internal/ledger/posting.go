package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces"
	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/models/events"
	"github.com/sheikh-saqib/spendlog/internal/period"
)

// SpendRequest moves Amount from the Patron ledger to the Outlay ledger.
type SpendRequest struct {
	Patron    string // credited ledger code
	Outlay    string // debited ledger code
	Amount    decimal.Decimal
	Narration string
	Date      string // optional YYYY-MM-DD, the posting is backdated to its midnight
}

// Amounts are stored as NUMERIC(20,4).
const (
	AmountScale     = 4
	amountIntDigits = 16
)

var maxAmount = decimal.New(1, amountIntDigits)

// ParseAmount parses a user supplied amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// checkAmount accepts positive amounts the store keeps exactly.
func checkAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, amount)
	case !amount.Equal(amount.Round(AmountScale)):
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount, AmountScale)
	case amount.GreaterThanOrEqual(maxAmount):
		return fmt.Errorf("%w: %s has more than %d integer digits", ErrInvalidAmount, amount, amountIntDigits)
	}
	return nil
}

// Spend is the core method that records spending.
// Nothing is written unless the amount, narration, date and both ledgers are valid.
func (l *Ledger) Spend(ctx context.Context, req SpendRequest) (models.Posting, error) {

	// Basic validation: the amount must be positive and fit the column
	if err := checkAmount(req.Amount); err != nil {
		return models.Posting{}, err
	}
	if strings.TrimSpace(req.Narration) == "" {
		return models.Posting{}, ErrInvalidNarration
	}

	posting := models.Posting{Amount: req.Amount, Narration: req.Narration}
	if req.Date != "" {
		day, err := period.ParseDate(req.Date)
		if err != nil {
			return models.Posting{}, err
		}
		posting.CreatedAt = day
	}

	patron, err := l.Resolve(ctx, req.Patron)
	if err != nil {
		return models.Posting{}, err
	}
	outlay, err := l.Resolve(ctx, req.Outlay)
	if err != nil {
		return models.Posting{}, err
	}
	posting.CrFrom = patron.ID
	posting.DbTo = outlay.ID

	saved, err := l.store.SavePosting(ctx, posting)
	if errors.Is(err, interfaces.ErrNotFound) {
		return models.Posting{}, fmt.Errorf("%w: %v", ErrLedgerNotFound, err)
	}
	if err != nil {
		return models.Posting{}, storeError("save posting", err)
	}

	l.log.WithFields(logrus.Fields{
		"id":     saved.ID,
		"patron": saved.CrFromCode,
		"outlay": saved.DbToCode,
		"amount": saved.Amount.String(),
	}).Debug("posting recorded")

	l.publish(ctx, saved)
	return saved, nil
}

// publish emits the PostingRecorded event. The posting is already committed,
// so a failure is only logged.
func (l *Ledger) publish(ctx context.Context, p models.Posting) {
	if l.publisher == nil {
		return
	}

	event := events.PostingRecorded{
		EventID:    uuid.NewString(),
		PostingID:  p.ID,
		Patron:     p.CrFromCode,
		Outlay:     p.DbToCode,
		Amount:     p.Amount,
		Narration:  p.Narration,
		OccurredAt: p.CreatedAt,
	}
	if err := l.publisher.Publish(ctx, l.topic, p.CrFromCode, event); err != nil {
		l.log.WithError(err).WithField("topic", l.topic).Warn("failed to publish posting event")
	}
}
