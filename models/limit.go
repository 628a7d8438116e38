package models

import "time"

// Limit status values, ordered from least to most severe.
const (
	LimitStatusNone     = "no_limit"
	LimitStatusSafe     = "safe"
	LimitStatusWarning  = "warning"
	LimitStatusExceeded = "exceeded"
)

// Limit history actions.
const (
	LimitActionSet    = "set"
	LimitActionRemove = "remove"
)

// MonthlyLimit is the user's configured maximum monthly expense total.
// At most one exists per user; absence means no limit is configured,
// which is distinct from a zero limit (zero is rejected outright).
type MonthlyLimit struct {
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	SetAt    time.Time `json:"set_at"`
}

// LimitStatus is the derived view of spending against the configured limit.
// It is recomputed on every query and never persisted. When HasLimit is
// true, exactly one of RemainingAmount and ExceededAmount is nonzero.
type LimitStatus struct {
	HasLimit        bool    `json:"has_limit"`
	Status          string  `json:"status"`
	CurrentExpenses float64 `json:"current_expenses"`
	LimitAmount     float64 `json:"limit_amount"`
	Currency        string  `json:"currency,omitempty"`
	Percentage      float64 `json:"percentage"`
	RemainingAmount float64 `json:"remaining_amount"`
	ExceededAmount  float64 `json:"exceeded_amount"`
}

// LimitHistoryEntry records a set or remove action, for auditing only.
type LimitHistoryEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

type SetLimitRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency,omitempty"`
}

// SpendingInsights projects the current month's spending forward.
type SpendingInsights struct {
	DailySpendingRate     float64  `json:"daily_spending_rate"`
	PredictedMonthTotal   float64  `json:"predicted_month_total"`
	DaysRemaining         int      `json:"days_remaining"`
	IsOnTrack             bool     `json:"is_on_track"`
	RecommendedDailySpend *float64 `json:"recommended_daily_spend,omitempty"`
}
