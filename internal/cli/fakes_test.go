package cli

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

// fakeStorage gives stubs the full service.Storage surface; tests embed it
// and override what they exercise.
type fakeStorage struct{}

func (fakeStorage) EnsureUser(_ context.Context, _ int64) (bool, error) { return false, nil }

func (fakeStorage) GetCategories(_ context.Context) ([]model.Category, error) { return nil, nil }

func (fakeStorage) GetCategoryByName(_ context.Context, _ string) (*model.Category, error) {
	return nil, nil
}

func (fakeStorage) GetCategoryByID(_ context.Context, _ int64) (*model.Category, error) {
	return nil, nil
}

func (fakeStorage) InsertTransaction(_ context.Context, _ int64, _ decimal.Decimal, _ string, _ int64) (int64, error) {
	return 0, nil
}

func (fakeStorage) GetUserTransactions(_ context.Context, _ int64, _ model.Period, _ int) ([]model.Transaction, error) {
	return nil, nil
}

func (fakeStorage) GetPeriodStatistics(_ context.Context, _ int64, _ model.Period) (*service.PeriodStatistics, error) {
	return &service.PeriodStatistics{}, nil
}

func (fakeStorage) GetBudgetStatus(_ context.Context, _ int64) ([]model.BudgetStatus, error) {
	return nil, nil
}

func (fakeStorage) SetBudget(_ context.Context, _, _ int64, _ decimal.Decimal, _ model.BudgetPeriod) error {
	return nil
}

func (fakeStorage) DeleteBudget(_ context.Context, _, _ int64) (bool, error) { return false, nil }

func (fakeStorage) Migrate(_ context.Context) error { return nil }

func (fakeStorage) Close() error { return nil }
