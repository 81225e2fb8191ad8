package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingTransaction is the ephemeral per-user conversation state between
// parsing an input line and committing (or discarding) a transaction. It is
// never persisted; a process restart loses it and the conversation starts
// over.
type PendingTransaction struct {
	Description       string
	SuggestedCategory string
	Amount            decimal.Decimal
	Token             uuid.UUID
	UserID            int64
	SuggestedID       int64
	Confidence        float64
	AutoCategory      bool
	HighConfidence    bool
}
