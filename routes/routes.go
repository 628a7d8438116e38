package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/231fa04g93/expense-tracker-api/handlers"
	"github.com/231fa04g93/expense-tracker-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupUserRoutes sets up protected user account routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB, notifier *services.Notifier) {
	userHandler := &handlers.UserHandler{DB: db, Notifier: notifier}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
	rg.DELETE("/user/account", userHandler.DeleteAccount)
}

// SetupTransactionRoutes sets up protected transaction CRUD routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, transactions *services.TransactionService, notifier *services.Notifier) {
	h := &handlers.TransactionHandler{Transactions: transactions, Notifier: notifier}

	rg.GET("/transactions", h.List)
	rg.POST("/transactions", h.Create)
	rg.DELETE("/transactions/:id", h.Delete)
}

// SetupAnalyticsRoutes sets up protected aggregation routes.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, analytics *services.AnalyticsService) {
	h := &handlers.AnalyticsHandler{Analytics: analytics}

	rg.GET("/analytics/monthly", h.Monthly)
	rg.GET("/analytics/daily", h.Daily)
	rg.GET("/analytics/categories", h.Categories)
	rg.GET("/analytics/stats", h.Stats)
}

// SetupLimitRoutes sets up protected monthly limit routes.
func SetupLimitRoutes(rg *gin.RouterGroup, limits *services.LimitTracker, notifier *services.Notifier) {
	h := &handlers.LimitHandler{Limits: limits, Notifier: notifier}

	rg.GET("/limit", h.Get)
	rg.PUT("/limit", h.Set)
	rg.DELETE("/limit", h.Remove)
	rg.GET("/limit/status", h.Status)
	rg.GET("/limit/history", h.History)
	rg.GET("/limit/insights", h.Insights)
}

// SetupNotificationRoutes sets up protected notification routes.
func SetupNotificationRoutes(rg *gin.RouterGroup, notifier *services.Notifier) {
	h := &handlers.NotificationHandler{Notifier: notifier}

	rg.GET("/notifications", h.List)
	rg.DELETE("/notifications/:id", h.Dismiss)
	rg.DELETE("/notifications", h.Clear)
	rg.POST("/notifications/check", h.Check)
}
