package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// EnsureUser registers the user if not yet known, reporting whether a new row
// was created.
func (s *SQLiteStorage) EnsureUser(ctx context.Context, userID int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateUserID(userID); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO users (user_id) VALUES (?)`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to ensure user %d: %w", userID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if rows > 0 {
		slog.Info("registered new user", "user_id", userID)
	}
	return rows > 0, nil
}
