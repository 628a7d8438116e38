package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/231fa04g93/expense-tracker-api/models"
)

const (
	// DefaultWarningThreshold is the percentage of the limit at which
	// status turns to warning. The boundary is inclusive: exactly 80%
	// of the limit is already a warning.
	DefaultWarningThreshold = 80.0

	// HistoryLimit caps the advisory set/remove audit trail per user.
	HistoryLimit = 50

	DefaultCurrency = "INR"
)

// LimitStore persists the singleton monthly limit and its audit history.
type LimitStore interface {
	Get(ctx context.Context, userID string) (models.MonthlyLimit, error) // ErrNotFound when absent
	Set(ctx context.Context, userID string, limit models.MonthlyLimit) error
	Remove(ctx context.Context, userID string) error
	History(ctx context.Context, userID string, n int) ([]models.LimitHistoryEntry, error)
}

// LimitTracker computes spending status against the configured monthly
// limit. Status is evaluated fresh on every query from the transaction
// store; nothing is incrementally maintained or cached.
type LimitTracker struct {
	store            LimitStore
	transactions     TransactionLister
	warningThreshold float64

	// now is the tracker's single clock. All "current month" decisions
	// use it, in UTC, so tests can pin time and so wall-clock reads are
	// not scattered through the computation.
	now func() time.Time
}

type LimitTrackerOption func(*LimitTracker)

func WithWarningThreshold(pct float64) LimitTrackerOption {
	return func(t *LimitTracker) { t.warningThreshold = pct }
}

func WithClock(now func() time.Time) LimitTrackerOption {
	return func(t *LimitTracker) { t.now = now }
}

func NewLimitTracker(store LimitStore, transactions TransactionLister, opts ...LimitTrackerOption) *LimitTracker {
	t := &LimitTracker{
		store:            store,
		transactions:     transactions,
		warningThreshold: DefaultWarningThreshold,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Set configures the monthly limit, replacing any existing one. Amounts
// of zero or below are rejected with ErrInvalidLimit; "no limit" is
// expressed by Remove, never by a zero amount.
func (t *LimitTracker) Set(ctx context.Context, userID string, amount float64, currency string) (models.MonthlyLimit, error) {
	if amount <= 0 {
		return models.MonthlyLimit{}, ErrInvalidLimit
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	limit := models.MonthlyLimit{
		Amount:   amount,
		Currency: currency,
		SetAt:    t.now().UTC(),
	}
	if err := t.store.Set(ctx, userID, limit); err != nil {
		return models.MonthlyLimit{}, err
	}
	return limit, nil
}

// Remove deletes the configured limit. Removing a limit that does not
// exist is a no-op that still succeeds.
func (t *LimitTracker) Remove(ctx context.Context, userID string) error {
	err := t.store.Remove(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Get returns the configured limit, or ErrNotFound when none is set.
func (t *LimitTracker) Get(ctx context.Context, userID string) (models.MonthlyLimit, error) {
	return t.store.Get(ctx, userID)
}

// History returns the most recent limit changes, newest first.
func (t *LimitTracker) History(ctx context.Context, userID string) ([]models.LimitHistoryEntry, error) {
	return t.store.History(ctx, userID, HistoryLimit)
}

// CurrentMonthExpenses sums the absolute amounts of expense transactions
// created in the clock's current calendar month and year. Records without
// a timestamp are skipped rather than failing the whole computation.
func (t *LimitTracker) CurrentMonthExpenses(ctx context.Context, userID string) (float64, error) {
	transactions, err := t.transactions.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := t.now().UTC()
	var total float64
	for _, txn := range transactions {
		if !txn.IsExpense() || txn.CreatedAt.IsZero() {
			continue
		}
		created := txn.CreatedAt.UTC()
		if created.Year() == now.Year() && created.Month() == now.Month() {
			total += txn.AbsAmount()
		}
	}
	return total, nil
}

// Status evaluates the limit state machine:
//
//	no limit            -> no_limit
//	pct >= 100          -> exceeded
//	pct >= threshold    -> warning
//	otherwise           -> safe
func (t *LimitTracker) Status(ctx context.Context, userID string) (models.LimitStatus, error) {
	currentExpenses, err := t.CurrentMonthExpenses(ctx, userID)
	if err != nil {
		return models.LimitStatus{}, err
	}

	limit, err := t.store.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return models.LimitStatus{
			HasLimit:        false,
			Status:          models.LimitStatusNone,
			CurrentExpenses: currentExpenses,
		}, nil
	}
	if err != nil {
		return models.LimitStatus{}, err
	}

	percentage := currentExpenses / limit.Amount * 100
	status := models.LimitStatusSafe
	switch {
	case percentage >= 100:
		status = models.LimitStatusExceeded
	case percentage >= t.warningThreshold:
		status = models.LimitStatusWarning
	}

	return models.LimitStatus{
		HasLimit:        true,
		Status:          status,
		CurrentExpenses: currentExpenses,
		LimitAmount:     limit.Amount,
		Currency:        limit.Currency,
		Percentage:      round2(percentage),
		RemainingAmount: math.Max(0, limit.Amount-currentExpenses),
		ExceededAmount:  math.Max(0, currentExpenses-limit.Amount),
	}, nil
}

// Insights projects current-month spending to month end from the average
// daily rate so far.
func (t *LimitTracker) Insights(ctx context.Context, userID string) (models.SpendingInsights, error) {
	status, err := t.Status(ctx, userID)
	if err != nil {
		return models.SpendingInsights{}, err
	}

	now := t.now().UTC()
	dayOfMonth := now.Day()
	daysInMonth := DaysInMonth(now.Year(), now.Month())
	daysRemaining := daysInMonth - dayOfMonth

	dailyRate := status.CurrentExpenses / float64(dayOfMonth)
	predicted := dailyRate * float64(daysInMonth)

	insights := models.SpendingInsights{
		DailySpendingRate:   round2(dailyRate),
		PredictedMonthTotal: round2(predicted),
		DaysRemaining:       daysRemaining,
		IsOnTrack:           true,
	}
	if status.HasLimit {
		insights.IsOnTrack = predicted <= status.LimitAmount
		if daysRemaining > 0 {
			recommended := round2(status.RemainingAmount / float64(daysRemaining))
			insights.RecommendedDailySpend = &recommended
		}
	}
	return insights, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
