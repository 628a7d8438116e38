package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/231fa04g93/expense-tracker-api/middleware"
	"github.com/231fa04g93/expense-tracker-api/models"
	"github.com/231fa04g93/expense-tracker-api/services"
	"github.com/231fa04g93/expense-tracker-api/utils"
)

type LimitHandler struct {
	Limits   *services.LimitTracker
	Notifier *services.Notifier
}

func (h *LimitHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	limit, err := h.Limits.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No limit configured"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load limit"})
		return
	}

	c.JSON(http.StatusOK, limit)
}

func (h *LimitHandler) Set(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.SetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := h.Limits.Set(c.Request.Context(), userID, req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Limit amount must be greater than zero"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to save limit"})
		return
	}

	if h.Notifier != nil {
		h.Notifier.LimitSet(userID, limit)
		// A new limit may already be in warning or exceeded territory.
		if err := h.Notifier.CheckLimits(c.Request.Context(), userID); err != nil {
			utils.SafeLog("limit check after set failed: %v", err)
		}
	}
	utils.LogLimitAction("set", userID, limit.Amount)

	c.JSON(http.StatusOK, limit)
}

// Remove deletes the configured limit. Removing a limit that does not
// exist is not an error.
func (h *LimitHandler) Remove(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.Limits.Remove(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to remove limit"})
		return
	}

	if h.Notifier != nil {
		h.Notifier.LimitRemoved(userID)
		if err := h.Notifier.CheckLimits(c.Request.Context(), userID); err != nil {
			utils.SafeLog("limit check after remove failed: %v", err)
		}
	}
	utils.LogLimitAction("remove", userID, 0)

	c.JSON(http.StatusOK, gin.H{"message": "Limit removed"})
}

func (h *LimitHandler) Status(c *gin.Context) {
	userID := middleware.UserID(c)

	status, err := h.Limits.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to compute limit status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *LimitHandler) History(c *gin.Context) {
	userID := middleware.UserID(c)

	history, err := h.Limits.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load limit history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *LimitHandler) Insights(c *gin.Context) {
	userID := middleware.UserID(c)

	insights, err := h.Limits.Insights(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to compute insights"})
		return
	}

	c.JSON(http.StatusOK, insights)
}
