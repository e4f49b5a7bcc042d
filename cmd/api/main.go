package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/ratelimit"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Initialize rate limiter
	var rateLimit echo.MiddlewareFunc
	if cfg.RateLimit.Enabled() {
		redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		rateLimit = ratelimit.NewLimiter(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window).Middleware()
	}

	// Initialize websocket hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Initialize repositories
	questionRepo := postgres.NewQuestionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// Initialize services
	triviaService := service.NewTriviaService(questionRepo, categoryRepo, service.WithEvents(hub))

	// Initialize handlers
	e := handler.NewRouter(handler.RouterConfig{
		Trivia:    handler.NewTriviaHandler(triviaService),
		WebSocket: handler.NewWebSocketHandler(hub),
		Health:    handler.NewHealthHandler(pool),
		RateLimit: rateLimit,
		AccessLog: true,
	})

	// Start server
	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Errorf("shutting down the server: %v", err)
			stop()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
}
