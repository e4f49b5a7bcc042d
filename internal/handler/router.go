package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouterConfig holds the handlers and optional middleware served by the API
type RouterConfig struct {
	Trivia    *TriviaHandler
	WebSocket *WebSocketHandler
	Health    *HealthHandler

	// RateLimit is applied to every route when set
	RateLimit echo.MiddlewareFunc

	// AccessLog enables per-request logging
	AccessLog bool
}

// NewRouter creates the echo instance serving the API
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if cfg.AccessLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
	}))
	if cfg.RateLimit != nil {
		e.Use(cfg.RateLimit)
	}

	// Routes
	if cfg.Trivia != nil {
		cfg.Trivia.Register(e)
	}
	if cfg.WebSocket != nil {
		e.GET("/ws", cfg.WebSocket.HandleWebSocket)
	}
	if cfg.Health != nil {
		e.GET("/health", cfg.Health.Health)
	}

	return e
}
