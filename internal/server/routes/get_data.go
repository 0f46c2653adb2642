package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contribgraph/backend/internal/server/middleware"
	"github.com/contribgraph/backend/pkg/contrib"
)

type getDataResponse struct {
	Message string `json:"message"`
}

// GetDataHandler returns the normalized records of both sources, or of one
// source when ?source= is given.
func GetDataHandler(c echo.Context) error {
	type getDataParams struct {
		Source string `query:"source" validate:"omitempty,oneof=internal external"`
	}

	params := new(getDataParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getDataResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getDataResponse{Message: "Invalid request params"})
	}

	svc := c.(*middleware.AppContext).App.Graph
	records := svc.GetNormalizedRecords(c.Request().Context())

	if params.Source == "" {
		return c.JSON(http.StatusOK, records)
	}

	p := contrib.Provenance(params.Source)
	return c.JSON(http.StatusOK, map[string][]contrib.Record{
		params.Source: records.Get(p),
	})
}
