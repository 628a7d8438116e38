package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/231fa04g93/expense-tracker-api/models"
	"github.com/231fa04g93/expense-tracker-api/utils"
)

// PostgresLimitStore persists the per-user monthly limit and its capped
// audit history. The expense_limits primary key on user_id enforces the
// at-most-one-limit invariant at the schema level.
type PostgresLimitStore struct {
	db *sql.DB
}

func NewPostgresLimitStore(db *sql.DB) *PostgresLimitStore {
	return &PostgresLimitStore{db: db}
}

func (s *PostgresLimitStore) Get(ctx context.Context, userID string) (models.MonthlyLimit, error) {
	var limit models.MonthlyLimit
	err := s.db.QueryRowContext(ctx, `
		SELECT amount, currency, set_at
		FROM expense_limits
		WHERE user_id = $1
	`, userID).Scan(&limit.Amount, &limit.Currency, &limit.SetAt)

	if err == sql.ErrNoRows {
		return models.MonthlyLimit{}, ErrNotFound
	}
	if err != nil {
		return models.MonthlyLimit{}, fmt.Errorf("%w: get limit: %v", ErrStoreUnavailable, err)
	}
	return limit, nil
}

// Set upserts the singleton limit and appends a 'set' history entry in
// the same transaction.
func (s *PostgresLimitStore) Set(ctx context.Context, userID string, limit models.MonthlyLimit) error {
	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO expense_limits (user_id, amount, currency, set_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id)
			DO UPDATE SET amount = $2, currency = $3, set_at = $4
		`, userID, limit.Amount, limit.Currency, limit.SetAt)
		if err != nil {
			return err
		}
		return s.appendHistory(ctx, tx, userID, models.LimitActionSet, limit.Amount, limit.Currency, limit.SetAt)
	})
	if err != nil {
		return fmt.Errorf("%w: set limit: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Remove deletes the limit and appends a 'remove' history entry. Returns
// ErrNotFound when no limit was configured; callers treat that as a
// successful no-op.
func (s *PostgresLimitStore) Remove(ctx context.Context, userID string) error {
	var missing bool
	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		var currency string
		err := tx.QueryRowContext(ctx, `
			DELETE FROM expense_limits
			WHERE user_id = $1
			RETURNING currency
		`, userID).Scan(&currency)
		if err == sql.ErrNoRows {
			missing = true
			return nil
		}
		if err != nil {
			return err
		}
		return s.appendHistory(ctx, tx, userID, models.LimitActionRemove, 0, currency, time.Now().UTC())
	})
	if err != nil {
		return fmt.Errorf("%w: remove limit: %v", ErrStoreUnavailable, err)
	}
	if missing {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresLimitStore) History(ctx context.Context, userID string, n int) ([]models.LimitHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, amount, currency, created_at
		FROM limit_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("%w: limit history: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	entries := []models.LimitHistoryEntry{}
	for rows.Next() {
		var e models.LimitHistoryEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Amount, &e.Currency, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan history: %v", ErrStoreUnavailable, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: limit history: %v", ErrStoreUnavailable, err)
	}
	return entries, nil
}

// appendHistory inserts an audit entry and evicts everything older than
// the most recent HistoryLimit rows for the user.
func (s *PostgresLimitStore) appendHistory(ctx context.Context, tx *sql.Tx, userID, action string, amount float64, currency string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO limit_history (id, user_id, action, amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New().String(), userID, action, amount, currency, at)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM limit_history
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM limit_history
			WHERE user_id = $1
			ORDER BY created_at DESC, id
			LIMIT $2
		)
	`, userID, HistoryLimit)
	return err
}
