package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/231fa04g93/expense-tracker-api/middleware"
	"github.com/231fa04g93/expense-tracker-api/models"
	"github.com/231fa04g93/expense-tracker-api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testUserID = "00000000-0000-0000-0000-000000000001"

// asUser injects the auth context the way middleware.AuthMiddleware does,
// so handlers can be exercised without minting real tokens.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextEmail, "test@example.com")
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(asUser(testUserID))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// listerFunc adapts a fixed transaction list to services.TransactionLister.
type listerFunc []models.Transaction

func (l listerFunc) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	return l, nil
}

// memoryLimits is an in-memory services.LimitStore for handler tests.
type memoryLimits struct {
	limits  map[string]models.MonthlyLimit
	history map[string][]models.LimitHistoryEntry
}

func newMemoryLimits() *memoryLimits {
	return &memoryLimits{
		limits:  make(map[string]models.MonthlyLimit),
		history: make(map[string][]models.LimitHistoryEntry),
	}
}

func (s *memoryLimits) Get(ctx context.Context, userID string) (models.MonthlyLimit, error) {
	limit, ok := s.limits[userID]
	if !ok {
		return models.MonthlyLimit{}, services.ErrNotFound
	}
	return limit, nil
}

func (s *memoryLimits) Set(ctx context.Context, userID string, limit models.MonthlyLimit) error {
	s.limits[userID] = limit
	s.record(userID, models.LimitActionSet, limit.Amount, limit.Currency)
	return nil
}

func (s *memoryLimits) Remove(ctx context.Context, userID string) error {
	if _, ok := s.limits[userID]; !ok {
		return services.ErrNotFound
	}
	delete(s.limits, userID)
	s.record(userID, models.LimitActionRemove, 0, "")
	return nil
}

func (s *memoryLimits) History(ctx context.Context, userID string, n int) ([]models.LimitHistoryEntry, error) {
	history := s.history[userID]
	if len(history) > n {
		history = history[:n]
	}
	return history, nil
}

func (s *memoryLimits) record(userID, action string, amount float64, currency string) {
	entry := models.LimitHistoryEntry{Action: action, Amount: amount, Currency: currency, CreatedAt: time.Now().UTC()}
	s.history[userID] = append([]models.LimitHistoryEntry{entry}, s.history[userID]...)
}

func expenseAt(text string, amount float64, at time.Time) models.Transaction {
	return models.Transaction{ID: text, UserID: testUserID, Text: text, Amount: -amount, CreatedAt: at}
}
