package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/231fa04g93/expense-tracker-api/models"
)

// memoryLimitStore is the in-memory LimitStore used by tracker and
// notifier tests.
type memoryLimitStore struct {
	limits  map[string]models.MonthlyLimit
	history map[string][]models.LimitHistoryEntry
}

func newMemoryLimitStore() *memoryLimitStore {
	return &memoryLimitStore{
		limits:  make(map[string]models.MonthlyLimit),
		history: make(map[string][]models.LimitHistoryEntry),
	}
}

func (s *memoryLimitStore) Get(ctx context.Context, userID string) (models.MonthlyLimit, error) {
	limit, ok := s.limits[userID]
	if !ok {
		return models.MonthlyLimit{}, ErrNotFound
	}
	return limit, nil
}

func (s *memoryLimitStore) Set(ctx context.Context, userID string, limit models.MonthlyLimit) error {
	s.limits[userID] = limit
	s.append(userID, models.LimitActionSet, limit.Amount, limit.Currency, limit.SetAt)
	return nil
}

func (s *memoryLimitStore) Remove(ctx context.Context, userID string) error {
	limit, ok := s.limits[userID]
	if !ok {
		return ErrNotFound
	}
	delete(s.limits, userID)
	s.append(userID, models.LimitActionRemove, 0, limit.Currency, time.Now().UTC())
	return nil
}

func (s *memoryLimitStore) History(ctx context.Context, userID string, n int) ([]models.LimitHistoryEntry, error) {
	history := s.history[userID]
	if len(history) > n {
		history = history[:n]
	}
	return append([]models.LimitHistoryEntry(nil), history...), nil
}

func (s *memoryLimitStore) append(userID, action string, amount float64, currency string, at time.Time) {
	// Newest first, capped like the real store.
	entry := models.LimitHistoryEntry{Action: action, Amount: amount, Currency: currency, CreatedAt: at}
	s.history[userID] = append([]models.LimitHistoryEntry{entry}, s.history[userID]...)
	if len(s.history[userID]) > HistoryLimit {
		s.history[userID] = s.history[userID][:HistoryLimit]
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var june15 = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T, txns []models.Transaction) (*LimitTracker, *memoryLimitStore) {
	t.Helper()
	store := newMemoryLimitStore()
	tracker := NewLimitTracker(store, staticLister(txns), WithClock(fixedClock(june15)))
	return tracker, store
}

func TestSetRejectsNonPositiveAmount(t *testing.T) {
	tracker, _ := newTestTracker(t, nil)

	for _, amount := range []float64{0, -1, -5000} {
		_, err := tracker.Set(context.Background(), "u1", amount, "INR")
		assert.ErrorIs(t, err, ErrInvalidLimit)
	}
}

func TestSetDefaultsCurrency(t *testing.T) {
	tracker, _ := newTestTracker(t, nil)

	limit, err := tracker.Set(context.Background(), "u1", 5000, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, limit.Currency)
	assert.Equal(t, june15, limit.SetAt)
}

func TestSetReplacesExistingLimit(t *testing.T) {
	tracker, _ := newTestTracker(t, nil)
	ctx := context.Background()

	_, err := tracker.Set(ctx, "u1", 5000, "INR")
	require.NoError(t, err)
	_, err = tracker.Set(ctx, "u1", 8000, "EUR")
	require.NoError(t, err)

	limit, err := tracker.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 8000.0, limit.Amount)
	assert.Equal(t, "EUR", limit.Currency)
}

func TestRemoveIsIdempotent(t *testing.T) {
	tracker, _ := newTestTracker(t, nil)
	ctx := context.Background()

	_, err := tracker.Set(ctx, "u1", 5000, "INR")
	require.NoError(t, err)

	require.NoError(t, tracker.Remove(ctx, "u1"))
	require.NoError(t, tracker.Remove(ctx, "u1"))

	_, err = tracker.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentMonthExpenses(t *testing.T) {
	tracker, _ := newTestTracker(t, []models.Transaction{
		expense("Grocery shopping", 3000, june15),
		expense("Electricity bill", 2200, june15.AddDate(0, 0, -10)),
		expense("Last month rent", 9000, june15.AddDate(0, -1, 0)),
		income("Salary", 50000, june15),
		{ID: "broken", Amount: -500}, // zero CreatedAt, skipped
	})

	total, err := tracker.CurrentMonthExpenses(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 5200.0, total)
}

func TestStatusNoLimit(t *testing.T) {
	tracker, _ := newTestTracker(t, []models.Transaction{
		expense("Grocery shopping", 3000, june15),
	})

	status, err := tracker.Status(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, status.HasLimit)
	assert.Equal(t, models.LimitStatusNone, status.Status)
	assert.Equal(t, 3000.0, status.CurrentExpenses)
	assert.Zero(t, status.LimitAmount)
	assert.Zero(t, status.Percentage)
}

func TestStatusNoDataNoLimit(t *testing.T) {
	tracker, _ := newTestTracker(t, nil)

	status, err := tracker.Status(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, status.HasLimit)
	assert.Zero(t, status.CurrentExpenses)
}

func TestStatusBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		spent     float64
		want      string
		pct       float64
		remaining float64
		exceeded  float64
	}{
		{"just under warning", 799.99, models.LimitStatusSafe, 80.0, 200.01, 0},
		{"at warning threshold", 800, models.LimitStatusWarning, 80.0, 200, 0},
		{"between warning and limit", 999, models.LimitStatusWarning, 99.9, 1, 0},
		{"exactly at limit", 1000, models.LimitStatusExceeded, 100.0, 0, 0},
		{"over limit", 1200, models.LimitStatusExceeded, 120.0, 0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _ := newTestTracker(t, []models.Transaction{
				expense("spend", tt.spent, june15),
			})
			_, err := tracker.Set(context.Background(), "u1", 1000, "INR")
			require.NoError(t, err)

			status, err := tracker.Status(context.Background(), "u1")
			require.NoError(t, err)
			assert.True(t, status.HasLimit)
			assert.Equal(t, tt.want, status.Status)
			assert.InDelta(t, tt.pct, status.Percentage, 1e-9)
			assert.InDelta(t, tt.remaining, status.RemainingAmount, 1e-9)
			assert.InDelta(t, tt.exceeded, status.ExceededAmount, 1e-9)
		})
	}
}

// 799.99 of 1000 is 79.999%, which reports as 80.0 after rounding but is
// still safe: classification happens before display rounding.
func TestStatusClassifiesBeforeRounding(t *testing.T) {
	tracker, _ := newTestTracker(t, []models.Transaction{
		expense("spend", 799.99, june15),
	})
	_, err := tracker.Set(context.Background(), "u1", 1000, "INR")
	require.NoError(t, err)

	status, err := tracker.Status(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LimitStatusSafe, status.Status)
	assert.Equal(t, 80.0, status.Percentage)
}

func TestStatusExceededScenario(t *testing.T) {
	tracker, _ := newTestTracker(t, []models.Transaction{
		expense("Grocery shopping", 3000, june15),
		expense("Electricity bill", 2200, june15),
	})
	ctx := context.Background()
	_, err := tracker.Set(ctx, "u1", 5000, "INR")
	require.NoError(t, err)

	status, err := tracker.Status(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LimitStatusExceeded, status.Status)
	assert.Equal(t, 5200.0, status.CurrentExpenses)
	assert.Equal(t, 104.0, status.Percentage)
	assert.Zero(t, status.RemainingAmount)
	assert.Equal(t, 200.0, status.ExceededAmount)

	// Removing the limit drops straight back to no_limit.
	require.NoError(t, tracker.Remove(ctx, "u1"))
	status, err = tracker.Status(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LimitStatusNone, status.Status)
}

func TestStatusCustomWarningThreshold(t *testing.T) {
	store := newMemoryLimitStore()
	tracker := NewLimitTracker(store, staticLister{
		expense("spend", 500, june15),
	}, WithClock(fixedClock(june15)), WithWarningThreshold(50))

	_, err := tracker.Set(context.Background(), "u1", 1000, "INR")
	require.NoError(t, err)

	status, err := tracker.Status(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LimitStatusWarning, status.Status)
}

func TestHistoryRecordsSetAndRemove(t *testing.T) {
	tracker, _ := newTestTracker(t, nil)
	ctx := context.Background()

	_, err := tracker.Set(ctx, "u1", 5000, "INR")
	require.NoError(t, err)
	require.NoError(t, tracker.Remove(ctx, "u1"))

	history, err := tracker.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.LimitActionRemove, history[0].Action)
	assert.Equal(t, models.LimitActionSet, history[1].Action)
	assert.Equal(t, 5000.0, history[1].Amount)
}

func TestHistoryCapped(t *testing.T) {
	tracker, _ := newTestTracker(t, nil)
	ctx := context.Background()

	for i := 0; i < HistoryLimit+20; i++ {
		_, err := tracker.Set(ctx, "u1", float64(i+1), "INR")
		require.NoError(t, err)
	}

	history, err := tracker.History(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, history, HistoryLimit)
	// Newest entry survives; the oldest were evicted.
	assert.Equal(t, float64(HistoryLimit+20), history[0].Amount)
}

func TestInsights(t *testing.T) {
	// June 15 of a 30-day month: 3000 spent, 200/day, projecting 6000.
	tracker, _ := newTestTracker(t, []models.Transaction{
		expense("spend", 3000, june15),
	})
	ctx := context.Background()
	_, err := tracker.Set(ctx, "u1", 5000, "INR")
	require.NoError(t, err)

	insights, err := tracker.Insights(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 200.0, insights.DailySpendingRate)
	assert.Equal(t, 6000.0, insights.PredictedMonthTotal)
	assert.Equal(t, 15, insights.DaysRemaining)
	assert.False(t, insights.IsOnTrack)
	require.NotNil(t, insights.RecommendedDailySpend)
	assert.InDelta(t, 2000.0/15, *insights.RecommendedDailySpend, 0.01)
}

func TestInsightsWithoutLimit(t *testing.T) {
	tracker, _ := newTestTracker(t, []models.Transaction{
		expense("spend", 1500, june15),
	})

	insights, err := tracker.Insights(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, insights.DailySpendingRate)
	assert.True(t, insights.IsOnTrack)
	assert.Nil(t, insights.RecommendedDailySpend)
}
