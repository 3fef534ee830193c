package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/config"
	"github.com/aeroreserva/airline-reservation/internal/model"
	"github.com/aeroreserva/airline-reservation/internal/payroll"
	"github.com/aeroreserva/airline-reservation/internal/repository"
)

// PayrollHandler serves the monthly payroll computations.  Both
// endpoints are read-only: they derive pay lines from completed-flight
// history and the configured pay scale without mutating anything.
type PayrollHandler struct {
	Scale       config.PayScale
	Users       *repository.UserRepo
	PayrollRepo *repository.PayrollRepo
}

func NewPayrollHandler(scale config.PayScale, users *repository.UserRepo, payrollRepo *repository.PayrollRepo) *PayrollHandler {
	if users == nil || payrollRepo == nil {
		panic("nil repository passed to NewPayrollHandler")
	}
	return &PayrollHandler{Scale: scale, Users: users, PayrollRepo: payrollRepo}
}

type payrollReq struct {
	Mes  int `json:"mes"`
	Anio int `json:"anio"`
}

// Pilots handles POST /v1/nomina/pilotos with {"mes": M, "anio": Y}.
// Each pilot gets one line: base pay, flight bonus per completed flight
// as pilot of record, and the copilot bonus per completed flight served
// as copilot.  Pilots with zero flights in the window still get a
// base-pay line.  A missing period is a 400; a fleet with no pilots at
// all is a 404.
func (h *PayrollHandler) Pilots(c echo.Context) error {
	var req payrollReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, end, err := payroll.MonthWindow(req.Mes, req.Anio)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mes and anio are required and must be valid"})
	}
	ctx := c.Request().Context()
	pilots, err := h.Users.ListByRole(ctx, model.RolePiloto)
	if err != nil {
		if errors.Is(err, repository.ErrNoCrew) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no pilots found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load pilots"})
	}
	counts, err := h.PayrollRepo.PilotCounts(ctx, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to aggregate flights"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"mes":    req.Mes,
		"anio":   req.Anio,
		"nomina": payroll.PilotLines(pilots, counts, h.Scale),
	})
}

// Attendants handles POST /v1/nomina/azafatas with {"mes": M, "anio": Y}.
func (h *PayrollHandler) Attendants(c echo.Context) error {
	var req payrollReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, end, err := payroll.MonthWindow(req.Mes, req.Anio)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mes and anio are required and must be valid"})
	}
	ctx := c.Request().Context()
	attendants, err := h.Users.ListByRole(ctx, model.RoleAzafata)
	if err != nil {
		if errors.Is(err, repository.ErrNoCrew) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no attendants found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load attendants"})
	}
	counts, err := h.PayrollRepo.AttendantCounts(ctx, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to aggregate flights"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"mes":    req.Mes,
		"anio":   req.Anio,
		"nomina": payroll.AttendantLines(attendants, counts, h.Scale),
	})
}
