// Package web serves the dashboard JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tubescout/internal/app"
	"tubescout/internal/metrics"
)

type Server struct {
	*echo.Echo
	svc *app.Service
	now func() time.Time
}

func NewServer(svc *app.Service) *Server {
	s := &Server{
		Echo: echo.New(),
		svc:  svc,
		now:  time.Now,
	}
	s.HideBanner = true
	s.HidePort = true
	s.HTTPErrorHandler = s.handleError

	s.setupMiddleware()
	s.registerRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.Use(middleware.BodyLimit("1M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))
	s.Use(countRequests)
}

func (s *Server) registerRoutes() {
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	s.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := s.Group("/api")
	api.GET("/trending", s.trending)
	api.GET("/search", s.search)
	api.GET("/channels/:id", s.channel)
	api.GET("/niche", s.niche)
	api.GET("/ideas", s.ideas)
	api.POST("/ideas/suggest", s.suggest)
	api.GET("/categories", s.categories)
	api.POST("/open", s.open)
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := s.Start(addr); err != nil {
		if ctx.Err() != nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
	return nil
}

func countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		status := c.Response().Status
		if err != nil {
			status = statusFor(err)
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, app.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrLLMDisabled), errors.Is(err, app.ErrUploadDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusFor(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorResponse{Error: msg})
}
