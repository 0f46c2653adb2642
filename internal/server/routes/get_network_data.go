package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contribgraph/backend/internal/server/middleware"
	"github.com/contribgraph/backend/pkg/graph"
)

// GetNetworkDataHandler rebuilds the graph from the current sources.
func GetNetworkDataHandler(c echo.Context) error {
	svc := c.(*middleware.AppContext).App.Graph
	return c.JSON(http.StatusOK, svc.GetGraph(c.Request().Context()))
}

func GetNetworkSchemaHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, graph.Schema())
}
