package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type PostingRecorded struct {
	EventID    string          `json:"event_id"`
	PostingID  int64           `json:"posting_id"`
	Patron     string          `json:"patron"`
	Outlay     string          `json:"outlay"`
	Amount     decimal.Decimal `json:"amount"`
	Narration  string          `json:"narration"`
	OccurredAt time.Time       `json:"occurred_at"`
}
