package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

func mustCategoryID(t *testing.T, store *SQLiteStorage, name string) int64 {
	t.Helper()
	cat, err := store.GetCategoryByName(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to look up category %q: %v", name, err)
	}
	if cat == nil {
		t.Fatalf("Category %q not seeded", name)
	}
	return cat.ID
}

func insertTestTransaction(t *testing.T, store *SQLiteStorage, userID int64, amount float64, description, category string) int64 {
	t.Helper()
	ctx := context.Background()
	if _, err := store.EnsureUser(ctx, userID); err != nil {
		t.Fatalf("Failed to ensure user: %v", err)
	}

	var categoryID int64
	if category != "" {
		categoryID = mustCategoryID(t, store, category)
	}

	id, err := store.InsertTransaction(ctx, userID, decimal.NewFromFloat(amount), description, categoryID)
	if err != nil {
		t.Fatalf("Failed to insert transaction: %v", err)
	}
	return id
}

func TestInsertTransaction(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	id := insertTestTransaction(t, store, 1, 300, "кофе", "Кафе")
	if id <= 0 {
		t.Errorf("Expected positive transaction id, got %d", id)
	}

	second := insertTestTransaction(t, store, 1, 450.50, "такси", "Транспорт")
	if second <= id {
		t.Errorf("Expected monotonically increasing ids, got %d after %d", second, id)
	}
}

func TestInsertTransaction_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := store.EnsureUser(ctx, 1); err != nil {
		t.Fatalf("Failed to ensure user: %v", err)
	}

	tests := []struct {
		wantErr error
		name    string
		amount  decimal.Decimal
		userID  int64
	}{
		{name: "zero amount", userID: 1, amount: decimal.Zero, wantErr: ErrInvalidAmount},
		{name: "negative amount", userID: 1, amount: decimal.NewFromInt(-50), wantErr: ErrInvalidAmount},
		{name: "invalid user", userID: 0, amount: decimal.NewFromInt(100), wantErr: ErrInvalidUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.InsertTransaction(ctx, tt.userID, tt.amount, "test", 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetUserTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	insertTestTransaction(t, store, 1, 300, "кофе", "Кафе")
	insertTestTransaction(t, store, 1, 1200, "продукты на неделю", "Продукты")
	insertTestTransaction(t, store, 1, 450, "", "")
	insertTestTransaction(t, store, 2, 999, "чужая трата", "Кафе")

	ctx := context.Background()

	txns, err := store.GetUserTransactions(ctx, 1, model.PeriodDay, 50)
	if err != nil {
		t.Fatalf("GetUserTransactions failed: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("Got %d transactions, want 3", len(txns))
	}

	// Newest first; the uncategorized one was inserted last.
	if txns[0].CategoryName != "" || !txns[0].Amount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Unexpected newest transaction: %+v", txns[0])
	}
	if txns[2].Description != "кофе" || txns[2].CategoryName != "Кафе" {
		t.Errorf("Unexpected oldest transaction: %+v", txns[2])
	}

	limited, err := store.GetUserTransactions(ctx, 1, model.PeriodAll, 2)
	if err != nil {
		t.Fatalf("GetUserTransactions with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Got %d transactions with limit 2, want 2", len(limited))
	}
}

func TestGetUserTransactions_InvalidPeriod(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetUserTransactions(context.Background(), 1, model.Period("quarter"), 10)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestGetPeriodStatistics(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	insertTestTransaction(t, store, 1, 300, "кофе", "Кафе")
	insertTestTransaction(t, store, 1, 200, "обед", "Кафе")
	insertTestTransaction(t, store, 1, 1500, "продукты", "Продукты")
	insertTestTransaction(t, store, 1, 100, "метро", "")

	stats, err := store.GetPeriodStatistics(context.Background(), 1, model.PeriodMonth)
	if err != nil {
		t.Fatalf("GetPeriodStatistics failed: %v", err)
	}

	if stats.Overall.Count != 4 {
		t.Errorf("Overall.Count = %d, want 4", stats.Overall.Count)
	}
	if stats.Overall.Total != 2100 {
		t.Errorf("Overall.Total = %v, want 2100", stats.Overall.Total)
	}
	if stats.Overall.Min != 100 || stats.Overall.Max != 1500 {
		t.Errorf("Min/Max = %v/%v, want 100/1500", stats.Overall.Min, stats.Overall.Max)
	}

	if len(stats.ByCategory) != 3 {
		t.Fatalf("Got %d category rows, want 3", len(stats.ByCategory))
	}
	// Ordered by total descending.
	if stats.ByCategory[0].Category != "Продукты" || stats.ByCategory[0].Total != 1500 {
		t.Errorf("Top category = %+v, want Продукты/1500", stats.ByCategory[0])
	}
	if stats.ByCategory[1].Category != "Кафе" || stats.ByCategory[1].Count != 2 {
		t.Errorf("Second category = %+v, want Кафе with 2 transactions", stats.ByCategory[1])
	}
	if stats.ByCategory[2].Category != "Без категории" {
		t.Errorf("Uncategorized row = %+v, want 'Без категории'", stats.ByCategory[2])
	}

	if stats.MostExpensive == nil || !stats.MostExpensive.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("MostExpensive = %+v, want the 1500 transaction", stats.MostExpensive)
	}
	if stats.MostFrequent == nil || stats.MostFrequent.Category != "Кафе" || stats.MostFrequent.Count != 2 {
		t.Errorf("MostFrequent = %+v, want Кафе with count 2", stats.MostFrequent)
	}
	if stats.DaysInPeriod < 1 {
		t.Errorf("DaysInPeriod = %d, want at least 1", stats.DaysInPeriod)
	}
}

func TestGetPeriodStatistics_ReleasesConnection(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	insertTestTransaction(t, store, 1, 300, "кофе", "Кафе")
	insertTestTransaction(t, store, 1, 450, "такси", "Транспорт")

	// The pool allows a single connection, so statistics must not leave a
	// cursor open between its internal queries or across calls.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		stats, err := store.GetPeriodStatistics(ctx, 1, model.PeriodMonth)
		if err != nil {
			t.Fatalf("GetPeriodStatistics run %d failed: %v", i+1, err)
		}
		if stats.MostExpensive == nil {
			t.Fatalf("Run %d: expected MostExpensive to be set", i+1)
		}
	}

	if _, err := store.InsertTransaction(ctx, 1, decimal.NewFromInt(100), "метро", 0); err != nil {
		t.Fatalf("Insert after statistics failed: %v", err)
	}
}

func TestGetPeriodStatistics_Empty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := store.EnsureUser(ctx, 7); err != nil {
		t.Fatalf("Failed to ensure user: %v", err)
	}

	stats, err := store.GetPeriodStatistics(ctx, 7, model.PeriodWeek)
	if err != nil {
		t.Fatalf("GetPeriodStatistics on empty history failed: %v", err)
	}
	if stats.Overall.Count != 0 || stats.Overall.Total != 0 {
		t.Errorf("Expected zeroed overall stats, got %+v", stats.Overall)
	}
	if stats.MostExpensive != nil {
		t.Errorf("Expected nil MostExpensive, got %+v", stats.MostExpensive)
	}
	if stats.MostFrequent != nil {
		t.Errorf("Expected nil MostFrequent, got %+v", stats.MostFrequent)
	}
	if len(stats.ByCategory) != 0 {
		t.Errorf("Expected no category rows, got %d", len(stats.ByCategory))
	}
}
