package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/231fa04g93/expense-tracker-api/config"
	"github.com/231fa04g93/expense-tracker-api/middleware"
	"github.com/231fa04g93/expense-tracker-api/routes"
	"github.com/231fa04g93/expense-tracker-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	log.Println("Database connected")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	transactions := services.NewTransactionService(db)
	analytics := services.NewAnalyticsService(transactions)
	limitStore := services.NewPostgresLimitStore(db)
	limits := services.NewLimitTracker(limitStore, transactions,
		services.WithWarningThreshold(cfg.WarningThreshold))
	notifier := services.NewNotifier(limits,
		services.WithCheckInterval(cfg.LimitCheckInterval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Run(ctx)

	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s - %d (%v)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	})

	router.Use(middleware.RateLimiter(cfg.RateLimit, cfg.RateLimitWindow))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, db)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.SetupUserRoutes(protected, db, notifier)
			routes.SetupTransactionRoutes(protected, transactions, notifier)
			routes.SetupAnalyticsRoutes(protected, analytics)
			routes.SetupLimitRoutes(protected, limits, notifier)
			routes.SetupNotificationRoutes(protected, notifier)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := 200
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = 503
		}
		c.JSON(code, gin.H{
			"status": status,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
