package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harborview/claimchat/backend/config"
	"github.com/harborview/claimchat/backend/handler"
	"github.com/harborview/claimchat/backend/middleware"
	"github.com/harborview/claimchat/backend/pkg/logger"
	"github.com/harborview/claimchat/backend/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded",
		"openai_configured", cfg.OpenAI.APIKey != "",
		"claims_api_configured", cfg.ClaimsAPI.APIKey != "",
	)
	if cfg.ClaimsAPI.APIKey == "" {
		slog.Warn("claims API not configured, serving mock data")
	}

	// Initialize services
	claimStore := service.NewClaimStore(&cfg.ClaimsAPI)
	conversations, err := service.NewConversationStore(cfg.Conversation.MaxSessions)
	if err != nil {
		slog.Error("failed to initialize conversation store", "error", err)
		os.Exit(1)
	}
	composer := service.NewResponseComposer(&cfg.OpenAI)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(claimStore, conversations, composer)
	claimsHandler := handler.NewClaimsHandler(claimStore)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.POST("/claims", claimsHandler.Create)
		api.POST("/clear-conversation", chatHandler.ClearConversation)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":           "OK",
				"timestamp":        time.Now().Format(time.RFC3339),
				"openaiConfigured": composer.Configured(),
			})
		})
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers for the separately served UI
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
