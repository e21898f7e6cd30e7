package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"medreminder/internal/interfaces/api/handler"
	authmw "medreminder/internal/interfaces/api/middleware"
	"medreminder/internal/pkg/logger"
)

// Config holds the dependencies for the router.
type Config struct {
	ScheduleHandler     *handler.ScheduleHandler
	ConfirmationHandler *handler.ConfirmationHandler
	EndpointHandler     *handler.EndpointHandler
	LineHandler         *handler.LineHandler // nil when LINE is not configured
	JWTSecret           []byte
	Logger              logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				cfg.Logger.Warn("REQUEST", append(fields, zap.Error(v.Error))...)
				return nil
			}
			cfg.Logger.Info("REQUEST", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Line-Signature"},
		MaxAge:       300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/api/vapid-public-key", cfg.EndpointHandler.VAPIDPublicKey)

	// LINE Webhook Endpoint, authenticated by its signature header.
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	api := e.Group("/api", authmw.JWT(cfg.JWTSecret))

	api.POST("/schedules", cfg.ScheduleHandler.Create)
	api.GET("/schedules", cfg.ScheduleHandler.List)
	api.GET("/schedules/:id", cfg.ScheduleHandler.Get)
	api.PUT("/schedules/:id", cfg.ScheduleHandler.Update)
	api.DELETE("/schedules/:id", cfg.ScheduleHandler.Delete)

	api.POST("/confirmations/:id/ack", cfg.ConfirmationHandler.Acknowledge)
	api.POST("/confirm", cfg.ConfirmationHandler.Confirm)
	api.GET("/confirmations", cfg.ConfirmationHandler.List)
	api.GET("/confirmations/:id", cfg.ConfirmationHandler.Get)

	api.GET("/endpoint", cfg.EndpointHandler.Get)
	api.PUT("/endpoint", cfg.EndpointHandler.Put)
	api.DELETE("/endpoint", cfg.EndpointHandler.Delete)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
