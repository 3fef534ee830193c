package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/repository"
)

// PublicHandler exposes unauthenticated flight browsing.  Guests can
// inspect the schedule and remaining seats before registering.
type PublicHandler struct {
	FlightRepo *repository.FlightRepo
}

func NewPublicHandler(flightRepo *repository.FlightRepo) *PublicHandler {
	if flightRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{FlightRepo: flightRepo}
}

// ListFlights handles GET /v1/vuelos.
func (h *PublicHandler) ListFlights(c echo.Context) error {
	flights, err := h.FlightRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load flights"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": flights})
}

// GetFlight handles GET /v1/vuelos/:id.
func (h *PublicHandler) GetFlight(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	f, err := h.FlightRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load flight"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": f})
}

// SearchFlights handles GET /v1/vuelos/buscar?origen=&destino=&fecha=.
// All filters are optional; fecha matches the departure calendar day
// (YYYY-MM-DD).
func (h *PublicHandler) SearchFlights(c echo.Context) error {
	origin := c.QueryParam("origen")
	destination := c.QueryParam("destino")
	day := c.QueryParam("fecha")
	flights, err := h.FlightRepo.Search(c.Request().Context(), origin, destination, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search flights"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": flights})
}
