package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, submit *SubmitHandler, examples *ExamplesHandler, health *HealthHandler) {
	e.GET("/healthz", health.Healthz)
	e.GET("/status", health.Status)
	e.GET("/integration", Integration)

	e.GET("/flows/:flow_id/sources/:source_id/examples", examples.Examples)
	// All methods reach the handler so unsupported ones get the lead 405 reply.
	e.Any("/flows/:flow_id/sources/:source_id/submit", submit.Handle)
}
