package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/model"
	"github.com/aeroreserva/airline-reservation/internal/repository"
)

// FlightAdminHandler serves flight management for ADMIN users: creating
// and updating flights, assigning crew and moving flights through the
// status machine.  Status transitions are unconstrained; marking a
// flight COMPLETED is what makes it payroll-eligible.
type FlightAdminHandler struct {
	FlightRepo *repository.FlightRepo
}

func NewFlightAdminHandler(flightRepo *repository.FlightRepo) *FlightAdminHandler {
	if flightRepo == nil {
		panic("nil repository passed to NewFlightAdminHandler")
	}
	return &FlightAdminHandler{FlightRepo: flightRepo}
}

type flightReq struct {
	Airline      string  `json:"airline"`
	FlightNumber string  `json:"flight_number"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	DepartsAt    string  `json:"departs_at"` // RFC3339
	ArrivesAt    string  `json:"arrives_at"` // RFC3339
	PriceCents   int64   `json:"price_cents"`
	SeatsTotal   uint32  `json:"seats_total"`
	Aircraft     string  `json:"aircraft"`
	PilotID      uint64  `json:"pilot_id"`
	CopilotID    *uint64 `json:"copilot_id"`
	Attendant1ID *uint64 `json:"attendant1_id"`
	Attendant2ID *uint64 `json:"attendant2_id"`
	Attendant3ID *uint64 `json:"attendant3_id"`
}

func (req *flightReq) toModel() (*model.Flight, string) {
	departs, err := time.Parse(time.RFC3339, req.DepartsAt)
	if err != nil {
		return nil, "invalid departs_at"
	}
	arrives, err := time.Parse(time.RFC3339, req.ArrivesAt)
	if err != nil {
		return nil, "invalid arrives_at"
	}
	if !arrives.After(departs) {
		return nil, "arrives_at must be after departs_at"
	}
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		return nil, "origin and destination required"
	}
	if req.SeatsTotal == 0 {
		return nil, "seats_total must be positive"
	}
	if req.PriceCents < 0 {
		return nil, "price_cents must not be negative"
	}
	if req.PilotID == 0 {
		return nil, "pilot_id required"
	}
	return &model.Flight{
		Airline:      strings.TrimSpace(req.Airline),
		FlightNumber: strings.TrimSpace(req.FlightNumber),
		Origin:       strings.TrimSpace(req.Origin),
		Destination:  strings.TrimSpace(req.Destination),
		DepartsAt:    departs.UTC(),
		ArrivesAt:    arrives.UTC(),
		PriceCents:   req.PriceCents,
		SeatsTotal:   req.SeatsTotal,
		Aircraft:     strings.TrimSpace(req.Aircraft),
		PilotID:      req.PilotID,
		CopilotID:    req.CopilotID,
		Attendant1ID: req.Attendant1ID,
		Attendant2ID: req.Attendant2ID,
		Attendant3ID: req.Attendant3ID,
	}, ""
}

// Create handles POST /v1/vuelos.  New flights start SCHEDULED with a
// full cabin (seats_available = seats_total).
func (h *FlightAdminHandler) Create(c echo.Context) error {
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.FlightRepo.Create(c.Request().Context(), f); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate flight"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create flight"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": f})
}

// Update handles PUT /v1/vuelos/:id.  Seat counters are not updatable;
// the reservation flow owns seats_available.
func (h *FlightAdminHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	f.ID = id
	if err := h.FlightRepo.Update(c.Request().Context(), f); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update flight"})
	}
	updated, err := h.FlightRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load flight"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// SetStatus handles PATCH /v1/vuelos/:id/estado with {"status": S}.
func (h *FlightAdminHandler) SetStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	if !model.ValidFlightStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.FlightRepo.SetStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

// Delete handles DELETE /v1/vuelos/:id.  Flights with reservations are
// protected and reported as a conflict.
func (h *FlightAdminHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	if err := h.FlightRepo.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "flight has reservations"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete flight"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
