package models

import (
	"math"
	"time"
)

// Transaction is a single income or expense entry. The sign of Amount
// carries the direction: positive is income, negative is expense. The
// category is derived from Text at read time and never stored.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Text      string    `json:"text"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Transaction) IsExpense() bool {
	return t.Amount < 0
}

func (t Transaction) IsIncome() bool {
	return t.Amount >= 0
}

// AbsAmount returns the unsigned amount, used for all expense aggregation.
func (t Transaction) AbsAmount() float64 {
	return math.Abs(t.Amount)
}

type CreateTransactionRequest struct {
	Text   string  `json:"text" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// TransactionStats summarizes a user's full transaction list.
type TransactionStats struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalExpenses     float64 `json:"total_expenses"`
	TotalIncome       float64 `json:"total_income"`
	NetAmount         float64 `json:"net_amount"`
	ExpenseCount      int     `json:"expense_count"`
	IncomeCount       int     `json:"income_count"`
	AvgExpense        float64 `json:"avg_expense"`
	AvgIncome         float64 `json:"avg_income"`
	IsProfit          bool    `json:"is_profit"`
}
