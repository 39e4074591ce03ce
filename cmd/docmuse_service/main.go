package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"docmuse/internal/config"
	"docmuse/internal/service"
	"docmuse/pkg/logger"
	"docmuse/pkg/ratelimiter"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("DocMuseService")
	appLogger.Info("Starting DocMuse service...")

	ctx := context.Background()
	assistant, err := service.NewAssistant(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize assistant: %v", err)
	}
	if initErr := assistant.InitializationError(); initErr != nil {
		appLogger.Warn(fmt.Sprintf("Query path disabled until a valid API key is set: %v", initErr))
	}

	limiter, err := ratelimiter.FromConfig(cfg.Middleware.RateLimiter)
	if err != nil {
		log.Fatalf("Failed to build rate limiter: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	handler := NewHttpHandler(assistant, cfg.Server.UploadDir, appLogger)

	api := router.Group("/api/v1")
	{
		api.POST("/query", rateLimit(limiter), handler.query)
		api.POST("/documents", handler.addDocuments)
		api.POST("/documents/upload", handler.uploadDocument)
		api.DELETE("/documents", handler.clearDocuments)
		api.GET("/stats", handler.stats)
		api.PUT("/apikey", handler.updateAPIKey)
	}

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(fmt.Sprintf("Server shutdown failed: %v", err))
	}
	appLogger.Info("Server gracefully stopped")
}

// rateLimit rejects requests with 429 once the limiter runs dry. A nil
// limiter disables the check.
func rateLimit(limiter ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
