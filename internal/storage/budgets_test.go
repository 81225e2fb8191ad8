package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

func TestBudgetWindowStart(t *testing.T) {
	wednesday := time.Date(2026, time.August, 26, 15, 30, 0, 0, time.UTC)
	sunday := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		now    time.Time
		want   time.Time
		name   string
		period model.BudgetPeriod
	}{
		{
			name:   "weekly from midweek",
			period: model.BudgetWeekly,
			now:    wednesday,
			want:   time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "weekly from Sunday stays in the same week",
			period: model.BudgetWeekly,
			now:    sunday,
			want:   time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly",
			period: model.BudgetMonthly,
			now:    wednesday,
			want:   time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := budgetWindowStart(tt.period, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("budgetWindowStart(%s, %s) = %s, want %s", tt.period, tt.now, got, tt.want)
			}
		})
	}
}

func TestSetBudget_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	catID := mustCategoryID(t, store, "Кафе")

	if err := store.SetBudget(ctx, 1, catID, decimal.Zero, model.BudgetMonthly); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount for zero limit, got %v", err)
	}
	if err := store.SetBudget(ctx, 1, catID, decimal.NewFromInt(1000), model.BudgetPeriod("daily")); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestGetBudgetStatus(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	insertTestTransaction(t, store, 1, 300, "кофе", "Кафе")
	insertTestTransaction(t, store, 1, 450, "обед", "Кафе")
	insertTestTransaction(t, store, 1, 2000, "продукты", "Продукты")

	cafeID := mustCategoryID(t, store, "Кафе")
	groceriesID := mustCategoryID(t, store, "Продукты")

	if err := store.SetBudget(ctx, 1, cafeID, decimal.NewFromInt(1000), model.BudgetMonthly); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}
	if err := store.SetBudget(ctx, 1, groceriesID, decimal.NewFromInt(1500), model.BudgetWeekly); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}

	statuses, err := store.GetBudgetStatus(ctx, 1)
	if err != nil {
		t.Fatalf("GetBudgetStatus failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("Got %d budget statuses, want 2", len(statuses))
	}

	// Ordered by category name: Кафе before Продукты.
	cafe := statuses[0]
	if cafe.CategoryName != "Кафе" {
		t.Fatalf("First status = %q, want Кафе", cafe.CategoryName)
	}
	if !cafe.CurrentSpent.Equal(decimal.NewFromInt(750)) {
		t.Errorf("Кафе spent = %s, want 750", cafe.CurrentSpent)
	}
	if !cafe.Remaining.Equal(decimal.NewFromInt(250)) {
		t.Errorf("Кафе remaining = %s, want 250", cafe.Remaining)
	}
	if cafe.Percentage != 75 {
		t.Errorf("Кафе percentage = %v, want 75", cafe.Percentage)
	}
	if cafe.Exceeded {
		t.Error("Кафе budget should not be exceeded at 75%")
	}

	groceries := statuses[1]
	if !groceries.Exceeded {
		t.Error("Продукты budget should be exceeded at 2000/1500")
	}
	if !groceries.Remaining.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("Продукты remaining = %s, want -500", groceries.Remaining)
	}
}

func TestSetBudget_Replaces(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := store.EnsureUser(ctx, 1); err != nil {
		t.Fatalf("Failed to ensure user: %v", err)
	}
	catID := mustCategoryID(t, store, "Кафе")

	if err := store.SetBudget(ctx, 1, catID, decimal.NewFromInt(1000), model.BudgetMonthly); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}
	if err := store.SetBudget(ctx, 1, catID, decimal.NewFromInt(2000), model.BudgetMonthly); err != nil {
		t.Fatalf("Failed to replace budget: %v", err)
	}

	statuses, err := store.GetBudgetStatus(ctx, 1)
	if err != nil {
		t.Fatalf("GetBudgetStatus failed: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("Got %d budgets after replace, want 1", len(statuses))
	}
	if !statuses[0].Limit.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Limit = %s, want 2000", statuses[0].Limit)
	}
}

func TestDeleteBudget(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := store.EnsureUser(ctx, 1); err != nil {
		t.Fatalf("Failed to ensure user: %v", err)
	}
	catID := mustCategoryID(t, store, "Кафе")

	if err := store.SetBudget(ctx, 1, catID, decimal.NewFromInt(500), model.BudgetMonthly); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}

	deleted, err := store.DeleteBudget(ctx, 1, catID)
	if err != nil {
		t.Fatalf("DeleteBudget failed: %v", err)
	}
	if !deleted {
		t.Error("Expected DeleteBudget to report a deleted row")
	}

	deleted, err = store.DeleteBudget(ctx, 1, catID)
	if err != nil {
		t.Fatalf("Second DeleteBudget failed: %v", err)
	}
	if deleted {
		t.Error("Expected second DeleteBudget to report nothing deleted")
	}
}
