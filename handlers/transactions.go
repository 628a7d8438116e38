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

type TransactionHandler struct {
	Transactions *services.TransactionService
	Notifier     *services.Notifier
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	txns, err := h.Transactions.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	if req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be non-zero"})
		return
	}

	txn, err := h.Transactions.Create(c.Request.Context(), userID, req.Text, req.Amount)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to create transaction"})
		return
	}

	if h.Notifier != nil {
		h.Notifier.TransactionAdded(c.Request.Context(), txn)
	}
	utils.LogTransactionAction("create", userID, txn.Amount)

	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	id := c.Param("id")

	txn, err := h.Transactions.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to delete transaction"})
		return
	}

	if h.Notifier != nil {
		h.Notifier.TransactionDeleted(c.Request.Context(), txn)
	}
	utils.LogTransactionAction("delete", userID, txn.Amount)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted", "transaction": txn})
}
