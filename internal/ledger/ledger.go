// Package ledger is the core of spendlog: it resolves ledger codes, records
// postings and computes every report from the stored postings.
package ledger

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	interfaces "github.com/sheikh-saqib/spendlog/internal/interfaces"
	"github.com/sheikh-saqib/spendlog/internal/models"
	"github.com/sheikh-saqib/spendlog/internal/period"
)

// Ledger is the main struct representing our ledger system.
// It holds a reference to the storage layer and an optional event publisher.
type Ledger struct {
	store     interfaces.LedgerStore    // can be any storage implementation
	publisher interfaces.EventPublisher // nil disables events
	topic     string
	now       func() time.Time
	log       logrus.FieldLogger

	mu sync.Mutex // serializes AddLedger so the duplicate check and the insert stay together
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPublisher publishes a PostingRecorded event to topic after every spend.
func WithPublisher(p interfaces.EventPublisher, topic string) Option {
	return func(l *Ledger) {
		l.publisher = p
		l.topic = topic
	}
}

// WithClock replaces time.Now as the reference for named periods and calendars.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger replaces the standard logrus logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Ledger) { l.log = log }
}

// NewLedger creates a new Ledger on top of a storage implementation
// (MemoryLedgerStore, PostgresLedgerStore, ...).
func NewLedger(store interfaces.LedgerStore, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Window resolves a period request against the ledger clock.
func (l *Ledger) Window(s period.Spec) (models.Window, error) {
	w, err := period.Resolve(s, l.now())
	if err != nil {
		return models.Window{}, err
	}
	l.log.WithFields(logrus.Fields{"period": s.String(), "start": w.Start, "end": w.End}).Debug("resolved window")
	return w, nil
}
