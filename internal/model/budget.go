package model

import "github.com/shopspring/decimal"

// Budget is a per-user spending limit on one category, unique per
// (user, category, period).
type Budget struct {
	CategoryName string
	Period       BudgetPeriod
	Limit        decimal.Decimal
	ID           int64
	UserID       int64
	CategoryID   int64
}

// BudgetStatus is a budget with its spend-derived fields, computed at read
// time against the budget's current period window.
type BudgetStatus struct {
	Budget
	CurrentSpent decimal.Decimal
	Remaining    decimal.Decimal
	Percentage   float64
	Exceeded     bool
}
