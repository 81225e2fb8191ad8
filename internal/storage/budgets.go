package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

// budgetWindowStart returns the start of the current window for a budget
// period: Monday midnight for weekly, the first of the month for monthly.
func budgetWindowStart(period model.BudgetPeriod, now time.Time) time.Time {
	if period == model.BudgetWeekly {
		weekday := int(now.Weekday())
		if weekday == 0 { // Sunday
			weekday = 7
		}
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return midnight.AddDate(0, 0, -(weekday - 1))
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// SetBudget creates or replaces the user's spending limit on a category.
func (s *SQLiteStorage) SetBudget(ctx context.Context, userID, categoryID int64, limit decimal.Decimal, period model.BudgetPeriod) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateAmount(limit); err != nil {
		return err
	}
	if !period.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO budgets (user_id, category_id, amount_limit, period)
		VALUES (?, ?, ?, ?)`,
		userID, categoryID, limit.InexactFloat64(), string(period))
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}

	slog.Info("budget set", "user_id", userID, "category_id", categoryID, "period", period)
	return nil
}

// DeleteBudget removes the user's budget for a category. It returns whether a
// budget existed.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, userID, categoryID int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateUserID(userID); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE user_id = ? AND category_id = ?",
		userID, categoryID)
	if err != nil {
		return false, fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted budgets: %w", err)
	}
	return affected > 0, nil
}

// GetBudgetStatus returns every budget of the user together with the spend
// accumulated inside the budget's current window. Derived fields (remaining,
// percentage, exceeded) are computed here rather than stored.
func (s *SQLiteStorage) GetBudgetStatus(ctx context.Context, userID int64) ([]model.BudgetStatus, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.category_id, c.name, b.amount_limit, b.period
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = ?
		ORDER BY c.name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var limit float64
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &limit, &b.Period); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Limit = decimal.NewFromFloat(limit)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	now := time.Now()
	statuses := make([]model.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		start := budgetWindowStart(b.Period, now)

		var spent float64
		err := s.db.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(amount), 0)
			FROM transactions
			WHERE user_id = ? AND category_id = ? AND transaction_date >= ?`,
			userID, b.CategoryID, start).Scan(&spent)
		if err != nil {
			return nil, fmt.Errorf("failed to query budget spend: %w", err)
		}

		status := model.BudgetStatus{
			Budget:       b,
			CurrentSpent: decimal.NewFromFloat(spent),
		}
		status.Remaining = b.Limit.Sub(status.CurrentSpent)
		if b.Limit.IsPositive() {
			pct, _ := status.CurrentSpent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Float64()
			status.Percentage = pct
		}
		status.Exceeded = status.CurrentSpent.GreaterThan(b.Limit)
		statuses = append(statuses, status)
	}

	return statuses, nil
}
