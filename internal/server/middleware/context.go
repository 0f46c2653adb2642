package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/contribgraph/backend/pkg/graph"
)

type App struct {
	Graph *graph.Service
}

type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context so handlers can reach the
// shared application services.
func AppContextMiddleware(svc *graph.Service) echo.MiddlewareFunc {
	app := &App{Graph: svc}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
