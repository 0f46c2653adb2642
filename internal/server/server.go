package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/contribgraph/backend/internal/server/middleware"
	"github.com/contribgraph/backend/internal/storage"
	"github.com/contribgraph/backend/internal/util"
	"github.com/contribgraph/backend/pkg/graph"
	"github.com/contribgraph/backend/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// New builds the echo instance with middleware and routes. An empty
// staticDir disables the presentation files.
func New(svc *graph.Service, staticDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: mid.NewRequestID,
	}))
	e.Use(mid.AppContextMiddleware(svc))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Error("Request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "id", v.RequestID, "err", v.Error)
				return nil
			}
			logger.Debug("Request", "method", v.Method, "uri", v.URI, "status", v.Status, "id", v.RequestID, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	if staticDir != "" {
		e.Static("/", staticDir)
	}

	return e
}

func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := storage.SourceConfigFromEnv()
	l, err := storage.NewSourceLoader(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to set up source loader", "err", err)
	}
	svc := graph.NewService(storage.NewReader(l, cfg))
	logger.Info("Serving contributor sources",
		"backend", cfg.Backend,
		"dir", cfg.DataDir,
		"internal", cfg.Internal,
		"external", cfg.External,
	)

	e := New(svc, util.GetEnv("STATIC_DIR"))

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
