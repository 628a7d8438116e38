package services

import (
	"context"
	"time"

	"github.com/231fa04g93/expense-tracker-api/models"
)

// AnalyticsService reduces a user's transaction list into the bucketed
// totals the dashboard charts consume. Aggregation never fails on bad
// data: records without a timestamp are skipped, not fatal.
type AnalyticsService struct {
	store TransactionLister
}

func NewAnalyticsService(store TransactionLister) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// MonthlyReport holds per-month expense totals for one calendar year.
// HasData distinguishes an all-zero year from a user with no transactions
// at all, so the UI can render "no data yet" instead of an empty chart.
type MonthlyReport struct {
	Year    int       `json:"year"`
	Totals  []float64 `json:"totals"` // always 12 entries, January first
	HasData bool      `json:"has_data"`
}

func (r MonthlyReport) IsEmpty() bool { return !r.HasData }

type DailyReport struct {
	Year    int       `json:"year"`
	Month   int       `json:"month"`  // 1-12
	Totals  []float64 `json:"totals"` // one entry per day of the month
	HasData bool      `json:"has_data"`
}

func (r DailyReport) IsEmpty() bool { return !r.HasData }

type CategoryReport struct {
	Totals  map[models.Category]float64 `json:"totals"`
	HasData bool                        `json:"has_data"`
}

func (r CategoryReport) IsEmpty() bool { return !r.HasData }

func (s *AnalyticsService) Monthly(ctx context.Context, userID string, year int) (MonthlyReport, error) {
	transactions, err := s.store.List(ctx, userID)
	if err != nil {
		return MonthlyReport{}, err
	}
	return MonthlyReport{
		Year:    year,
		Totals:  MonthlyTotals(transactions, year),
		HasData: len(transactions) > 0,
	}, nil
}

func (s *AnalyticsService) Daily(ctx context.Context, userID string, year int, month time.Month) (DailyReport, error) {
	transactions, err := s.store.List(ctx, userID)
	if err != nil {
		return DailyReport{}, err
	}
	return DailyReport{
		Year:    year,
		Month:   int(month),
		Totals:  DailyTotals(transactions, year, month),
		HasData: len(transactions) > 0,
	}, nil
}

func (s *AnalyticsService) Categories(ctx context.Context, userID string) (CategoryReport, error) {
	transactions, err := s.store.List(ctx, userID)
	if err != nil {
		return CategoryReport{}, err
	}
	return CategoryReport{
		Totals:  CategoryTotals(transactions),
		HasData: len(transactions) > 0,
	}, nil
}

func (s *AnalyticsService) Stats(ctx context.Context, userID string) (models.TransactionStats, error) {
	transactions, err := s.store.List(ctx, userID)
	if err != nil {
		return models.TransactionStats{}, err
	}
	return Stats(transactions), nil
}

// MonthlyTotals sums absolute expense amounts per calendar month of the
// given year. Months without expenses stay zero. The result does not
// depend on input ordering.
func MonthlyTotals(transactions []models.Transaction, year int) []float64 {
	totals := make([]float64, 12)
	for _, t := range transactions {
		if !t.IsExpense() || t.CreatedAt.IsZero() {
			continue
		}
		if t.CreatedAt.Year() != year {
			continue
		}
		totals[int(t.CreatedAt.Month())-1] += t.AbsAmount()
	}
	return totals
}

// DailyTotals sums absolute expense amounts per day of the given month.
// The slice length equals the number of days in that month.
func DailyTotals(transactions []models.Transaction, year int, month time.Month) []float64 {
	totals := make([]float64, DaysInMonth(year, month))
	for _, t := range transactions {
		if !t.IsExpense() || t.CreatedAt.IsZero() {
			continue
		}
		if t.CreatedAt.Year() != year || t.CreatedAt.Month() != month {
			continue
		}
		totals[t.CreatedAt.Day()-1] += t.AbsAmount()
	}
	return totals
}

// CategoryTotals sums absolute expense amounts per derived category.
// Categories with no spend are absent from the map, not zero-valued.
func CategoryTotals(transactions []models.Transaction) map[models.Category]float64 {
	totals := make(map[models.Category]float64)
	for _, t := range transactions {
		if !t.IsExpense() || t.CreatedAt.IsZero() {
			continue
		}
		totals[Categorize(t.Text)] += t.AbsAmount()
	}
	return totals
}

// Stats computes overall income/expense counts and averages.
func Stats(transactions []models.Transaction) models.TransactionStats {
	var stats models.TransactionStats
	for _, t := range transactions {
		stats.TotalTransactions++
		if t.IsExpense() {
			stats.ExpenseCount++
			stats.TotalExpenses += t.AbsAmount()
		} else {
			stats.IncomeCount++
			stats.TotalIncome += t.Amount
		}
	}
	stats.NetAmount = stats.TotalIncome - stats.TotalExpenses
	stats.IsProfit = stats.NetAmount >= 0
	if stats.ExpenseCount > 0 {
		stats.AvgExpense = stats.TotalExpenses / float64(stats.ExpenseCount)
	}
	if stats.IncomeCount > 0 {
		stats.AvgIncome = stats.TotalIncome / float64(stats.IncomeCount)
	}
	return stats
}

// DaysInMonth returns the number of days in a calendar month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
