package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

// InsertTransaction persists one committed transaction and returns its id.
// Amounts are stored as REAL; the decimal boundary lives in the domain layer.
func (s *SQLiteStorage) InsertTransaction(ctx context.Context, userID int64, amount decimal.Decimal, description string, categoryID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	if err := validateAmount(amount); err != nil {
		return 0, err
	}

	var cat any
	if categoryID > 0 {
		cat = categoryID
	}
	var desc any
	if description != "" {
		desc = description
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, amount, description, category_id, transaction_date)
		VALUES (?, ?, ?, ?, ?)`,
		userID, amount.InexactFloat64(), desc, cat, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read transaction id: %w", err)
	}

	slog.Info("inserted transaction", "transaction_id", id, "user_id", userID)
	return id, nil
}

// GetUserTransactions returns the user's transactions within the period,
// newest first, capped at limit.
func (s *SQLiteStorage) GetUserTransactions(ctx context.Context, userID int64, period model.Period, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	if limit <= 0 {
		limit = 50
	}

	start, end := period.Range(time.Now())

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.amount, COALESCE(t.description, ''),
		       COALESCE(t.category_id, 0), COALESCE(c.name, ''), t.transaction_date
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ? AND t.transaction_date >= ? AND t.transaction_date <= ?
		ORDER BY t.transaction_date DESC
		LIMIT ?`,
		userID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var txn model.Transaction
	var amount float64
	if err := row.Scan(&txn.ID, &txn.UserID, &amount, &txn.Description,
		&txn.CategoryID, &txn.CategoryName, &txn.Date); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}
	txn.Amount = decimal.NewFromFloat(amount)
	return txn, nil
}

// GetPeriodStatistics computes the full statistics bundle for one user and
// period: overall figures, per-category aggregates, the single most expensive
// transaction and the most frequent category.
func (s *SQLiteStorage) GetPeriodStatistics(ctx context.Context, userID int64, period model.Period) (*service.PeriodStatistics, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	start, end := period.Range(time.Now())

	stats := &service.PeriodStatistics{
		Period:       period,
		Start:        start,
		End:          end,
		DaysInPeriod: int(end.Sub(start).Hours()/24) + 1,
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COALESCE(AVG(amount), 0),
		       COALESCE(MIN(amount), 0),
		       COALESCE(MAX(amount), 0)
		FROM transactions
		WHERE user_id = ? AND transaction_date >= ? AND transaction_date <= ?`,
		userID, start, end).Scan(
		&stats.Overall.Count, &stats.Overall.Total, &stats.Overall.Avg,
		&stats.Overall.Min, &stats.Overall.Max)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall statistics: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(c.name, 'Без категории'), COUNT(t.id),
		       COALESCE(SUM(t.amount), 0), COALESCE(AVG(t.amount), 0)
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ? AND t.transaction_date >= ? AND t.transaction_date <= ?
		GROUP BY c.name
		ORDER BY SUM(t.amount) DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query category statistics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs service.CategoryStat
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.Total, &cs.Avg); err != nil {
			return nil, fmt.Errorf("failed to scan category statistics: %w", err)
		}
		stats.ByCategory = append(stats.ByCategory, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category statistics: %w", err)
	}

	// With MaxOpenConns(1) an open cursor here would starve the queries
	// below, so the single-row lookups go through QueryRowContext.
	expRow := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.user_id, t.amount, COALESCE(t.description, ''),
		       COALESCE(t.category_id, 0), COALESCE(c.name, ''), t.transaction_date
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ? AND t.transaction_date >= ? AND t.transaction_date <= ?
		ORDER BY t.amount DESC
		LIMIT 1`,
		userID, start, end)
	txn, err := scanTransaction(expRow)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no transactions in the period
	case err != nil:
		return nil, fmt.Errorf("failed to query most expensive transaction: %w", err)
	default:
		stats.MostExpensive = &txn
	}

	var frequent service.CategoryCount
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(c.name, 'Без категории'), COUNT(t.id)
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ? AND t.transaction_date >= ? AND t.transaction_date <= ?
		GROUP BY c.name
		ORDER BY COUNT(t.id) DESC
		LIMIT 1`,
		userID, start, end).Scan(&frequent.Category, &frequent.Count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query most frequent category: %w", err)
	}
	if err == nil {
		stats.MostFrequent = &frequent
	}

	return stats, nil
}
