package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"leadconduit-classic/internal/inbound"
	"leadconduit-classic/internal/record"
)

// ExamplesHandler serves sample submissions for a flow and source.
type ExamplesHandler struct{}

// NewExamplesHandler creates an ExamplesHandler.
func NewExamplesHandler() *ExamplesHandler {
	return &ExamplesHandler{}
}

// Examples returns the example envelopes. Query parameters become the lead
// fields, with dotted names expanded.
func (h *ExamplesHandler) Examples(c echo.Context) error {
	params := record.Unflatten(record.FromValues(c.QueryParams()))
	examples := inbound.Examples(c.Param("flow_id"), c.Param("source_id"), params)
	return c.JSON(http.StatusOK, examples)
}
