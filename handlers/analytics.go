package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/231fa04g93/expense-tracker-api/middleware"
	"github.com/231fa04g93/expense-tracker-api/services"
)

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
}

// Monthly returns per-month expense totals for one year.
// Defaults to the current year when ?year= is absent.
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	userID := middleware.UserID(c)

	year, ok := yearParam(c)
	if !ok {
		return
	}

	report, err := h.Analytics.Monthly(c.Request.Context(), userID, year)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) Daily(c *gin.Context) {
	userID := middleware.UserID(c)

	year, ok := yearParam(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	month := int(now.Month())
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
		month = parsed
	}

	report, err := h.Analytics.Daily(c.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) Categories(c *gin.Context) {
	userID := middleware.UserID(c)

	report, err := h.Analytics.Categories(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) Stats(c *gin.Context) {
	userID := middleware.UserID(c)

	stats, err := h.Analytics.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func yearParam(c *gin.Context) (int, bool) {
	year := time.Now().UTC().Year()
	raw := c.Query("year")
	if raw == "" {
		return year, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1970 || parsed > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, false
	}
	return parsed, true
}
