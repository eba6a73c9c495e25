package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alucardavid/samplemed-blog/internal/auth"
	"github.com/alucardavid/samplemed-blog/internal/cache"
	"github.com/alucardavid/samplemed-blog/internal/config"
	"github.com/alucardavid/samplemed-blog/internal/frontend"
	"github.com/alucardavid/samplemed-blog/internal/handler"
	"github.com/alucardavid/samplemed-blog/internal/infrastructure/database"
	"github.com/alucardavid/samplemed-blog/internal/logger"
	"github.com/alucardavid/samplemed-blog/internal/metrics"
	"github.com/alucardavid/samplemed-blog/internal/middleware"
	"github.com/alucardavid/samplemed-blog/internal/repository"
	"github.com/alucardavid/samplemed-blog/internal/service"
	"github.com/alucardavid/samplemed-blog/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	userRepo := repository.NewPostgresUserRepository(pool)
	articleRepo := repository.NewPostgresArticleRepository(pool)
	keywordRepo := repository.NewPostgresKeywordRepository(pool)
	commentRepo := repository.NewPostgresCommentRepository(pool)

	// Initialize response cache and token service
	store := cache.New(cfg.CacheTTL)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenLifetime, cfg.RefreshTokenLifetime)

	// Initialize validator
	v := validator.NewValidator()

	// Initialize services
	keywordService := service.NewKeywordService(keywordRepo, store)
	articleService := service.NewArticleService(articleRepo, userRepo, keywordService, store)
	commentService := service.NewCommentService(commentRepo, articleRepo, store)
	userService := service.NewUserService(userRepo, tokens, store)

	// Initialize handlers
	pagination := handler.Pagination{PageSize: cfg.PageSize, MaxPageSize: cfg.MaxPageSize}
	articleHandler := handler.NewArticleHandler(articleService, v, pagination)
	keywordHandler := handler.NewKeywordHandler(keywordService, v, pagination)
	commentHandler := handler.NewCommentHandler(commentService, v, pagination)
	userHandler := handler.NewUserHandler(userService, v, pagination)
	tokenHandler := handler.NewTokenHandler(userService, tokens)
	healthHandler := handler.NewHealthHandler(pool)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.NoRoute(middleware.NoRoute())

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Token routes
		v1.POST("/token", tokenHandler.Obtain)
		v1.POST("/token/refresh", tokenHandler.Refresh)

		// Article routes: reads public, writes owner-only
		articles := v1.Group("/articles")
		{
			articles.GET("", middleware.CachePage(store), articleHandler.List)
			articles.GET("/:id", articleHandler.Get)
			articles.GET("/author/:author_id", articleHandler.ByAuthor)
			articles.POST("", middleware.RequireAuth(tokens), articleHandler.Create)
			articles.PUT("/:id", middleware.RequireAuth(tokens), articleHandler.Update)
			articles.PATCH("/:id", middleware.RequireAuth(tokens), articleHandler.Update)
			articles.DELETE("/:id", middleware.RequireAuth(tokens), articleHandler.Delete)
		}

		// Keyword routes
		keywords := v1.Group("/keywords")
		{
			keywords.GET("", middleware.CachePage(store), keywordHandler.List)
			keywords.GET("/:id", keywordHandler.Get)
			keywords.POST("", middleware.RequireAuth(tokens), keywordHandler.Create)
			keywords.PUT("/:id", middleware.RequireAuth(tokens), keywordHandler.Update)
			keywords.PATCH("/:id", middleware.RequireAuth(tokens), keywordHandler.Update)
			keywords.DELETE("/:id", middleware.RequireAuth(tokens), keywordHandler.Delete)
		}

		// Comment routes: everything behind authentication
		comments := v1.Group("/comments", middleware.RequireAuth(tokens))
		{
			comments.GET("", commentHandler.List)
			comments.GET("/:id", commentHandler.Get)
			comments.POST("", commentHandler.Create)
			comments.PUT("/:id", commentHandler.Update)
			comments.PATCH("/:id", commentHandler.Update)
			comments.DELETE("/:id", commentHandler.Delete)
		}

		// User routes: reads public, registration open, writes behind a token
		users := v1.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", middleware.RequireAuth(tokens), userHandler.Update)
			users.PATCH("/:id", middleware.RequireAuth(tokens), userHandler.Update)
			users.DELETE("/:id", middleware.RequireAuth(tokens), userHandler.Delete)
		}
	}

	// Server-rendered frontend consuming the API above
	router.LoadHTMLGlob(cfg.TemplateGlob)
	views := frontend.NewViews(frontend.NewClient(cfg.APIBaseURL))
	views.Register(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
