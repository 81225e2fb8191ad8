package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single committed expense record.
type Transaction struct {
	Date         time.Time
	Description  string
	CategoryName string
	Amount       decimal.Decimal
	ID           int64
	UserID       int64
	CategoryID   int64
}

// MaxAmount is the upper bound accepted at validation time.
var MaxAmount = decimal.NewFromInt(1_000_000_000)
