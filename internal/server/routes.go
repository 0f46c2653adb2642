package server

import (
	"github.com/contribgraph/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Contributor routes
	apiRoutes.GET("/data", routes.GetDataHandler)
	apiRoutes.GET("/network-data", routes.GetNetworkDataHandler)
	apiRoutes.GET("/network-data/schema", routes.GetNetworkSchemaHandler)
}
