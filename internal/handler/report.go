package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/payroll"
	"github.com/aeroreserva/airline-reservation/internal/repository"
)

// ReportHandler exposes the admin reporting endpoints.  All windows are
// computed in UTC relative to the moment of the request; an empty
// window yields zeroed aggregates rather than an error.
type ReportHandler struct {
	Reports *repository.ReportRepo

	// now is swappable in tests.
	now func() time.Time
}

func NewReportHandler(reports *repository.ReportRepo) *ReportHandler {
	if reports == nil {
		panic("nil repository passed to NewReportHandler")
	}
	return &ReportHandler{Reports: reports, now: time.Now}
}

// Weekly handles GET /v1/reportes/semanal: the current ISO week, Monday
// 00:00:00 through Sunday 23:59:59 UTC.
func (h *ReportHandler) Weekly(c echo.Context) error {
	start, end := payroll.WeekWindow(h.now().UTC())
	return h.summary(c, start, end)
}

// Monthly handles GET /v1/reportes/mensual: the current calendar month.
func (h *ReportHandler) Monthly(c echo.Context) error {
	now := h.now().UTC()
	start, end, err := payroll.MonthWindow(int(now.Month()), now.Year())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute period"})
	}
	return h.summary(c, start, end)
}

// Annual handles GET /v1/reportes/anual: the current calendar year.
func (h *ReportHandler) Annual(c echo.Context) error {
	start, end := payroll.YearWindow(h.now().UTC())
	return h.summary(c, start, end)
}

func (h *ReportHandler) summary(c echo.Context, start, end time.Time) error {
	rep, err := h.Reports.Summarize(c.Request().Context(), start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reporte": rep})
}

// Clients handles GET /v1/reportes/clientes: per-customer lifetime
// reservation counts and spend, biggest spenders first.
func (h *ReportHandler) Clients(c echo.Context) error {
	lines, err := h.Reports.Clients(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reporteClientes": lines})
}
