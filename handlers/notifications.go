package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/231fa04g93/expense-tracker-api/middleware"
	"github.com/231fa04g93/expense-tracker-api/services"
)

// DefaultNotificationDisplayLimit caps how many notifications a plain
// list request returns; clients can raise it with ?limit=.
const DefaultNotificationDisplayLimit = 5

type NotificationHandler struct {
	Notifier *services.Notifier
}

// List returns the most recent notifications for the user, newest last.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	limit := DefaultNotificationDisplayLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	list := h.Notifier.Notifications(userID)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}

	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	userID := middleware.UserID(c)
	h.Notifier.Dismiss(userID, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Notification dismissed"})
}

func (h *NotificationHandler) Clear(c *gin.Context) {
	userID := middleware.UserID(c)
	h.Notifier.Clear(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}

// Check re-evaluates the user's limit immediately instead of waiting
// for the periodic sweep.
func (h *NotificationHandler) Check(c *gin.Context) {
	userID := middleware.UserID(c)

	if err := h.Notifier.CheckLimits(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to check limit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": h.Notifier.Notifications(userID)})
}
