package router

import (
	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/handler"
	"github.com/aeroreserva/airline-reservation/internal/middleware"
	"github.com/aeroreserva/airline-reservation/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, f *handler.FlightAdminHandler, a *handler.AuthHandler, n *handler.PayrollHandler, rep *handler.ReportHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Flight management ----
	// Listing and reading flights is handled by the public browse API.
	g.POST("/vuelos", f.Create)
	g.PUT("/vuelos/:id", f.Update)
	g.PATCH("/vuelos/:id/estado", f.SetStatus)
	g.DELETE("/vuelos/:id", f.Delete)

	// ---- Users ----
	// Self-service registration only creates CLIENTE accounts; crew and
	// admin accounts are provisioned here.
	g.POST("/usuarios", a.CreateUser)

	// ---- Payroll ----
	g.POST("/nomina/pilotos", n.Pilots)
	g.POST("/nomina/azafatas", n.Attendants)

	// ---- Reports ----
	g.GET("/reportes/semanal", rep.Weekly)
	g.GET("/reportes/mensual", rep.Monthly)
	g.GET("/reportes/anual", rep.Annual)
	g.GET("/reportes/clientes", rep.Clients)
}
