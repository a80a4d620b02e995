package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/readcoach/api/internal/cache"
	"github.com/readcoach/api/internal/config"
	"github.com/readcoach/api/internal/database"
	"github.com/readcoach/api/internal/handler"
	"github.com/readcoach/api/internal/limiter"
	"github.com/readcoach/api/internal/llm"
	"github.com/readcoach/api/internal/middleware"
	"github.com/readcoach/api/internal/review"
	"github.com/readcoach/api/internal/scheduler"
	"github.com/readcoach/api/internal/validator"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisCache = nil // Continue without Redis cache (fail-open)
	}

	// Initialize word validator
	wordValidator, err := validator.NewWordValidator("data/words.txt")
	if err != nil {
		log.Printf("Warning: Failed to load word validator: %v", err)
		// Continue without validator (fail-open)
	}

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMModel)

	// Vocabulary review core
	vocabStore := review.NewGormStore(db)
	vocabScheduler := review.NewScheduler(vocabStore)

	// Rate limiter over Redis (nil disables limiting)
	var rateLimiter *limiter.Limiter
	if redisCache != nil {
		rateLimiter = limiter.NewLimiter(redisCache)
	}

	googleConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, cfg.JWTSecret, googleConfig, cfg.FrontendURL)
	passageHandler := handler.NewPassageHandler(llmClient)
	sessionHandler := handler.NewSessionHandler(db)
	vocabHandler := handler.NewVocabularyHandler(vocabScheduler, llmClient, redisCache, wordValidator)

	// Background definition prefetcher
	var prefetcher *scheduler.DefinitionPrefetcher
	if cfg.PrefetchEnabled {
		prefetcher = scheduler.NewDefinitionPrefetcher(db, llmClient, scheduler.PrefetchConfig{
			Interval: cfg.PrefetchInterval,
		})
		go prefetcher.Start(context.Background())
		log.Println("Background definition prefetcher started")
	}

	// Setup router
	r := gin.Default()
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Prefetcher status
	r.GET("/prefetch/status", func(c *gin.Context) {
		if prefetcher != nil {
			c.JSON(200, prefetcher.GetStatus())
		} else {
			c.JSON(200, gin.H{"enabled": false, "message": "Prefetcher is disabled"})
		}
	})

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/google", authHandler.GoogleAuth)
		authGroup.GET("/google/callback", authHandler.GoogleCallback)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), authHandler.Me)
	}

	// API routes (authenticated)
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Passage Q&A
		api.POST("/passages/questions", middleware.RateLimitMiddleware(rateLimiter, "questions"), passageHandler.GenerateQuestions)
		api.POST("/passages/analyze", middleware.RateLimitMiddleware(rateLimiter, "analyze"), passageHandler.AnalyzeAnswer)

		// Learning sessions
		api.POST("/sessions", sessionHandler.Create)
		api.GET("/sessions", sessionHandler.List)
		api.GET("/sessions/:id", sessionHandler.Get)

		// Vocabulary
		api.POST("/vocabulary", middleware.RateLimitMiddleware(rateLimiter, "vocabulary"), vocabHandler.Add)
		api.GET("/vocabulary", vocabHandler.List)
		api.GET("/vocabulary/due", vocabHandler.Due)
		api.POST("/vocabulary/:id/review", vocabHandler.Review)
		api.GET("/vocabulary/export", vocabHandler.Export)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("API server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
