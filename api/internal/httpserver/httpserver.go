package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"image-extractor/api/internal/handle"
)

type Server struct {
	e    *echo.Echo
	addr string
	log  *zap.Logger
}

// New wires the routes. CORS is open to every origin on every route.
func New(addr string, h *handle.Handle, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handle.ErrorHandler(log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/healthz"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.POST("/upload", h.Upload)

	return &Server{e: e, addr: addr, log: log}
}

// Handler returns the echo router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.e }

// Run blocks until the server stops. A clean Shutdown is not an error.
func (s *Server) Run() error {
	s.log.Info("listening", zap.String("addr", s.addr))
	if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.e.Shutdown(ctx)
}
