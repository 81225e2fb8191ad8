package router

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

// mockClassifier returns a fixed prediction, or an error when set.
type mockClassifier struct {
	err        error
	category   string
	confidence float64
}

func (m *mockClassifier) Predict(string) (model.Prediction, error) {
	if m.err != nil {
		return model.Prediction{}, m.err
	}
	return model.Prediction{
		Category:     m.category,
		Confidence:   m.confidence,
		Distribution: map[string]float64{m.category: m.confidence},
	}, nil
}

func (m *mockClassifier) PredictWithThreshold(text string, threshold float64) (string, float64, bool, error) {
	prediction, err := m.Predict(text)
	if err != nil {
		return "", 0, false, err
	}
	if prediction.Confidence >= threshold {
		return prediction.Category, prediction.Confidence, true, nil
	}
	return "", prediction.Confidence, false, nil
}

// mockStorage is an in-memory Storage with scriptable insert failures.
type mockStorage struct {
	insertErr  error
	categories []model.Category
	inserted   []model.Transaction
	nextID     int64
	mu         sync.Mutex
}

func newMockStorage(names ...string) *mockStorage {
	s := &mockStorage{nextID: 1}
	for i, name := range names {
		s.categories = append(s.categories, model.Category{ID: int64(i + 1), Name: name})
	}
	return s
}

func (s *mockStorage) EnsureUser(context.Context, int64) (bool, error) { return false, nil }

func (s *mockStorage) GetCategories(context.Context) ([]model.Category, error) {
	return s.categories, nil
}

func (s *mockStorage) GetCategoryByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range s.categories {
		if c.Name == name {
			cat := c
			return &cat, nil
		}
	}
	return nil, nil
}

func (s *mockStorage) GetCategoryByID(_ context.Context, id int64) (*model.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			cat := c
			return &cat, nil
		}
	}
	return nil, nil
}

func (s *mockStorage) InsertTransaction(_ context.Context, userID int64, amount decimal.Decimal, description string, categoryID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	id := s.nextID
	s.nextID++
	s.inserted = append(s.inserted, model.Transaction{
		ID:          id,
		UserID:      userID,
		Amount:      amount,
		Description: description,
		CategoryID:  categoryID,
	})
	return id, nil
}

func (s *mockStorage) GetUserTransactions(context.Context, int64, model.Period, int) ([]model.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (s *mockStorage) GetPeriodStatistics(context.Context, int64, model.Period) (*service.PeriodStatistics, error) {
	return nil, errors.New("not implemented")
}

func (s *mockStorage) GetBudgetStatus(context.Context, int64) ([]model.BudgetStatus, error) {
	return nil, errors.New("not implemented")
}

func (s *mockStorage) SetBudget(context.Context, int64, int64, decimal.Decimal, model.BudgetPeriod) error {
	return errors.New("not implemented")
}

func (s *mockStorage) DeleteBudget(context.Context, int64, int64) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *mockStorage) Migrate(context.Context) error { return nil }
func (s *mockStorage) Close() error                  { return nil }
