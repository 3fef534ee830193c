package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/model"
	"github.com/aeroreserva/airline-reservation/internal/payment"
	"github.com/aeroreserva/airline-reservation/internal/queue"
	"github.com/aeroreserva/airline-reservation/internal/repository"
	queue_publisher "github.com/aeroreserva/airline-reservation/internal/service"
)

// PaymentHandler covers the two touch points with the external payment
// providers: issuing a checkout session reference and receiving the
// signed capture webhook.
type PaymentHandler struct {
	Providers    *payment.Registry
	Reservations *repository.ReservationRepo
	Flights      *repository.FlightRepo
}

func NewPaymentHandler(providers *payment.Registry, reservations *repository.ReservationRepo, flights *repository.FlightRepo) *PaymentHandler {
	if providers == nil || reservations == nil || flights == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{Providers: providers, Reservations: reservations, Flights: flights}
}

// Checkout handles POST /v1/reservaciones/:id/checkout/:provider.  It
// mints a provider session reference for an unpaid reservation owned by
// the caller and stores it so the capture webhook can match the
// reservation later.
func (h *PaymentHandler) Checkout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	provider := strings.ToLower(c.Param("provider"))

	ctx := c.Request().Context()
	res, err := h.Reservations.GetForUser(ctx, reservationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "reservation belongs to another user"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
		}
	}
	if res.PaymentState == model.PaymentPaid {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already paid"})
	}

	ref, err := h.Providers.NewSessionRef(provider)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment provider"})
	}
	if err := h.Reservations.AttachPaymentRef(ctx, reservationID, provider, ref); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start checkout"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": reservationID,
		"provider":       provider,
		"payment_ref":    ref,
	})
}

// Webhook handles POST /v1/pagos/webhook/:provider.  The raw body is
// authenticated with the provider's shared secret before anything is
// parsed.  A capture for a reference already marked PAID is answered
// 200 without side effects so providers can retry safely.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	provider := strings.ToLower(c.Param("provider"))
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}
	sig := c.Request().Header.Get("X-Webhook-Signature")
	if !h.Providers.VerifySignature(provider, body, sig) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid signature"})
	}

	var event payment.CaptureEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	ctx := c.Request().Context()
	res, changed, err := h.Reservations.MarkPaidByRef(ctx, provider, event.Ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown payment reference"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
	}
	if !changed {
		// Replayed delivery; already settled.
		return c.JSON(http.StatusOK, echo.Map{"status": "already_paid"})
	}

	flight, err := h.Flights.GetByID(ctx, res.FlightID)
	if err != nil {
		log.Printf("payment: flight %d lookup for receipt failed: %v", res.FlightID, err)
		return c.JSON(http.StatusOK, echo.Map{"status": "paid"})
	}

	paid := queue.ReservationPaidEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		FlightID:      flight.ID,
		FlightNumber:  flight.FlightNumber,
		Origin:        flight.Origin,
		Destination:   flight.Destination,
		SeatCount:     res.SeatCount,
		TotalCents:    int64(res.SeatCount) * flight.PriceCents,
		Provider:      provider,
		PaymentRef:    event.Ref,
		PaidAt:        time.Now().UTC().Format(time.RFC3339),
	}
	// A lost receipt never undoes a captured payment.
	if err := queue_publisher.PublishReservationPaid(ctx, paid); err != nil {
		log.Printf("payment: receipt event for reservation %d not published: %v", res.ID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "paid"})
}
