package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/model"
	"github.com/aeroreserva/airline-reservation/internal/repository"
)

// ReservationHandler serves the customer reservation endpoints.  All
// methods assume JWT authentication and role validation have already
// been performed by middleware.  The seat decrement and the reservation
// insert run inside one transaction so a crash can never leak
// decremented seats without a matching reservation.
type ReservationHandler struct {
	FlightRepo      *repository.FlightRepo
	ReservationRepo *repository.ReservationRepo
}

// NewReservationHandler constructs a ReservationHandler.  Both
// repositories must be non-nil.
func NewReservationHandler(flightRepo *repository.FlightRepo, reservationRepo *repository.ReservationRepo) *ReservationHandler {
	if flightRepo == nil || reservationRepo == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{FlightRepo: flightRepo, ReservationRepo: reservationRepo}
}

// Create handles POST /v1/reservaciones/:flightId.  The body carries
// {"seat_count": N}.  The conditional decrement inside the transaction
// guarantees no overbooking: when two requests race for the last seats,
// exactly one UPDATE matches.  Returns 201 with the created reservation,
// 400 for a bad seat count or insufficient seats, 404 when the flight
// does not exist.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	flightID, ok := pathID(c, "flightId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var body struct {
		SeatCount int `json:"seat_count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SeatCount < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_count must be a positive integer"})
	}
	seatCount := uint32(body.SeatCount)

	ctx := c.Request().Context()
	tx, err := h.FlightRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.FlightRepo.ReserveSeatsTx(ctx, tx, flightID, seatCount); err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		case errors.Is(err, repository.ErrInsufficientSeats):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient seats available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reserve seats"})
		}
	}

	res := &model.Reservation{
		UserID:    userID,
		FlightID:  flightID,
		SeatCount: seatCount,
	}
	if err := h.ReservationRepo.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, echo.Map{"reservation": res})
}

// Cancel handles DELETE /v1/reservaciones/:id.  Only the owning user
// may cancel; the reservation row is removed and its seats returned to
// the flight in the same transaction.  Returns 200 with the cancelled
// reservation, 404 when it does not exist, 403 when it belongs to
// another user.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	tx, err := h.FlightRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.ReservationRepo.GetForUserTx(ctx, tx, resID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	if err := h.ReservationRepo.DeleteTx(ctx, tx, res.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	n, err := h.FlightRepo.RestoreSeatsTx(ctx, tx, res.FlightID, res.SeatCount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to restore seats"})
	}
	if n == 0 {
		// The owning flight vanished between the FK check and now.
		// Cancellation still succeeds for the caller; flag the seat
		// counter for reconciliation instead of failing the request.
		log.Printf("reservation: cancel %d restored no seats on flight %d (reconciliation needed)", res.ID, res.FlightID)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// List handles GET /v1/reservaciones.  It returns all reservations of
// the current user with embedded flight detail, newest first; an empty
// array when none exist.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.ReservationRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}
