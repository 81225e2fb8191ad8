// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// User operations
	EnsureUser(ctx context.Context, userID int64) (bool, error)

	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)

	// Transaction operations
	InsertTransaction(ctx context.Context, userID int64, amount decimal.Decimal, description string, categoryID int64) (int64, error)
	GetUserTransactions(ctx context.Context, userID int64, period model.Period, limit int) ([]model.Transaction, error)
	GetPeriodStatistics(ctx context.Context, userID int64, period model.Period) (*PeriodStatistics, error)

	// Budget operations
	GetBudgetStatus(ctx context.Context, userID int64) ([]model.BudgetStatus, error)
	SetBudget(ctx context.Context, userID, categoryID int64, limit decimal.Decimal, period model.BudgetPeriod) error
	DeleteBudget(ctx context.Context, userID, categoryID int64) (bool, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Classifier is the prediction interface the router consumes. Implementations
// wrap a model trained offline; they are never trained in the request path.
type Classifier interface {
	Predict(text string) (model.Prediction, error)
	PredictWithThreshold(text string, threshold float64) (category string, confidence float64, confident bool, err error)
}

// OverallStats aggregates all transactions in a period.
type OverallStats struct {
	Count int
	Total float64
	Avg   float64
	Min   float64
	Max   float64
}

// CategoryStat aggregates one category within a period.
type CategoryStat struct {
	Category string
	Count    int
	Total    float64
	Avg      float64
}

// CategoryCount pairs a category with its transaction count.
type CategoryCount struct {
	Category string
	Count    int
}

// PeriodStatistics is the full statistics bundle for one user and period.
type PeriodStatistics struct {
	Start         time.Time
	End           time.Time
	MostExpensive *model.Transaction
	MostFrequent  *CategoryCount
	Period        model.Period
	ByCategory    []CategoryStat
	Overall       OverallStats
	DaysInPeriod  int
}
