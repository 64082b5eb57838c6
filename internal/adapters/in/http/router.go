package http

import (
	"log/slog"
	"net/http"
	"time"

	"dispatch/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

const (
	pingPath    = "/ping"
	metricsPath = "/metrics"
	openAPIFile = "/api/openapi.yaml"
)

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	Rate      float64
	Burst     int
	ExpiresIn time.Duration
}

// DefaultRateLimit allows 10 requests per second per client.
func DefaultRateLimit() RateLimitConfig {
	return RateLimitConfig{Rate: 10, Burst: 0, ExpiresIn: time.Second}
}

// RouterConfig wires optional parts of the router. A nil OpenAPI skips
// request validation; a nil Gatherer skips /metrics.
type RouterConfig struct {
	RateLimit RateLimitConfig
	OpenAPI   *openapi3.T
	Gatherer  prom.Gatherer
	Logger    *slog.Logger
}

// NewRouter builds the echo instance serving the dispatch API.
func NewRouter(s *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(cfg.Logger))
	e.Use(rateLimiter(cfg.RateLimit))
	if cfg.OpenAPI != nil {
		e.Use(OpenAPIValidator(cfg.OpenAPI))
	}

	e.GET(pingPath, func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	if cfg.Gatherer != nil {
		e.GET(metricsPath, echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET(openAPIFile, func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.OpenAPI)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(openAPIFile)))

	// courier methods
	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers", s.GetCouriers)
	e.GET("/couriers/assignments", s.GetAssignments)
	e.GET("/couriers/meta-info/:courier_id", s.GetCourierMetaInfo)
	e.GET("/couriers/:courier_id", s.GetCourier)

	// order methods
	e.POST("/orders", s.CreateOrders)
	e.GET("/orders", s.GetOrders)
	e.POST("/orders/complete", s.CompleteOrders)
	e.POST("/orders/assign", s.AssignOrders)
	e.GET("/orders/:order_id", s.GetOrder)

	return e
}

func rateLimiter(cfg RateLimitConfig) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == pingPath || c.Path() == metricsPath
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.Rate),
			Burst:     cfg.Burst,
			ExpiresIn: cfg.ExpiresIn,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, emptyResponse{})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, emptyResponse{})
		},
	})
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
