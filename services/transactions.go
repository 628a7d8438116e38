package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/231fa04g93/expense-tracker-api/models"
)

// TransactionLister is the read side of the transaction store, consumed
// by the analytics and limit services.
type TransactionLister interface {
	List(ctx context.Context, userID string) ([]models.Transaction, error)
}

// TransactionService persists transactions in Postgres. Transactions are
// immutable once created: there is no update-in-place, only create and
// delete.
type TransactionService struct {
	db *sql.DB
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db}
}

// List returns all transactions for a user, newest first.
func (s *TransactionService) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, text, amount, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %v", ErrStoreUnavailable, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", ErrStoreUnavailable, err)
	}

	return transactions, nil
}

func (s *TransactionService) Create(ctx context.Context, userID, text string, amount float64) (models.Transaction, error) {
	t := models.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, text, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, t.ID, t.UserID, t.Text, t.Amount, t.CreatedAt)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: create transaction: %v", ErrStoreUnavailable, err)
	}

	return t, nil
}

// Delete removes a transaction and returns the deleted row so callers can
// describe it in notifications. Deleting another user's transaction is
// indistinguishable from deleting a missing one.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) (models.Transaction, error) {
	var t models.Transaction
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM transactions
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, text, amount, created_at
	`, id, userID).Scan(&t.ID, &t.UserID, &t.Text, &t.Amount, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Transaction{}, ErrNotFound
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: delete transaction: %v", ErrStoreUnavailable, err)
	}

	return t, nil
}
