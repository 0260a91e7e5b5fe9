// Package main runs the parent-forum HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/capstone-forum/backend/config"
	"github.com/capstone-forum/backend/internal/activity"
	"github.com/capstone-forum/backend/internal/ai"
	"github.com/capstone-forum/backend/internal/ask"
	"github.com/capstone-forum/backend/internal/auth"
	"github.com/capstone-forum/backend/internal/bookmarks"
	"github.com/capstone-forum/backend/internal/comments"
	"github.com/capstone-forum/backend/internal/likes"
	"github.com/capstone-forum/backend/internal/middleware"
	"github.com/capstone-forum/backend/internal/moderation"
	"github.com/capstone-forum/backend/internal/questions"
	"github.com/capstone-forum/backend/internal/spell"
	"github.com/capstone-forum/backend/internal/users"
	"github.com/capstone-forum/backend/pkg/database"
	"github.com/capstone-forum/backend/pkg/redis"
	"github.com/capstone-forum/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	verifier := auth.NewJWTVerifier(cfg.Auth.Secret, cfg.Auth.AuthorizedParties)
	completer := ai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)

	// Questions and discussions
	questionRepo := questions.NewRepository(pool)
	moderator := moderation.NewService(completer, logger)
	questionHandler := questions.NewHandler(questionRepo, moderator, rdb, logger)

	// Duplicate/answer pipeline
	pipeline := ask.NewPipeline(questionRepo, completer, cfg.Ask.CandidateLimit, logger)
	askHandler := ask.NewHandler(pipeline, cfg.Ask.MinQuestionLength, logger)

	// Comments
	commentRepo := comments.NewRepository(pool)
	commentHandler := comments.NewHandler(commentRepo)

	// Likes and bookmarks
	likeRepo := likes.NewRepository(pool)
	likeHandler := likes.NewHandler(likeRepo)
	bookmarkRepo := bookmarks.NewRepository(pool)
	bookmarkHandler := bookmarks.NewHandler(bookmarkRepo)

	// Profiles and activity
	userRepo := users.NewRepository(pool)
	userHandler := users.NewHandler(userRepo)
	activityHandler := activity.NewHandler(questionRepo)

	// Spelling cleanup
	spellHandler := spell.NewHandler(completer, logger)

	modelCallLimit := middleware.RateLimit(rdb, cfg.RateLimit.ModelCallsPerMinute, time.Minute, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public listings
	router.GET("/questions", questionHandler.List)
	router.GET("/questions/trending", questionHandler.Trending)
	router.GET("/comments", commentHandler.List)

	// Submissions: anonymous allowed, model calls rate limited
	router.POST("/ask", middleware.OptionalAuth(verifier), modelCallLimit, askHandler.Submit)
	router.POST("/questions", middleware.OptionalAuth(verifier), modelCallLimit, questionHandler.CreateDiscussion)
	router.POST("/spell", middleware.OptionalAuth(verifier), modelCallLimit, spellHandler.Correct)

	// Signed-in API
	api := router.Group("")
	api.Use(middleware.RequireAuth(verifier))
	{
		api.POST("/comments", commentHandler.Create)
		api.POST("/likes", likeHandler.Toggle)
		api.POST("/bookmarks", bookmarkHandler.Toggle)
		api.GET("/bookmarks", bookmarkHandler.List)
		api.POST("/me", userHandler.Sync)
		api.POST("/me/settings", userHandler.UpdateSettings)
		api.GET("/my/activity", activityHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
