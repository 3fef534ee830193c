package model

import "time"

// Payment states of a reservation.  A reservation starts UNPAID and is
// flipped to PAID by the payment capture webhook.  Cancellation removes
// the row entirely rather than tombstoning it.
const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

// Reservation records a customer's claim on N seats of a specific flight.
// The seat count is fixed at creation; there is no partial modification.
// This struct corresponds to a row in the `reservations` table.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – customer who made the reservation.
//  FlightID        – flight being reserved.
//  SeatCount       – number of seats claimed, always >= 1.
//  PaymentState    – UNPAID or PAID.
//  PaymentRef      – external provider session/charge reference, if any.
//  PaymentProvider – provider that issued PaymentRef (stripe, paypal).
//  CreatedAt       – creation timestamp; reports window on this value.
//  UpdatedAt       – timestamp of last update.
type Reservation struct {
	ID              uint64    `json:"id"`         // reservations.id
	UserID          uint64    `json:"user_id"`    // reservations.user_id
	FlightID        uint64    `json:"flight_id"`  // reservations.flight_id
	SeatCount       uint32    `json:"seat_count"` // reservations.seat_count
	PaymentState    string    `json:"payment_state"`              // reservations.payment_state
	PaymentRef      *string   `json:"payment_ref,omitempty"`      // reservations.payment_ref (nullable)
	PaymentProvider *string   `json:"payment_provider,omitempty"` // reservations.payment_provider (nullable)
	CreatedAt       time.Time `json:"created_at"` // reservations.created_at
	UpdatedAt       time.Time `json:"updated_at"` // reservations.updated_at
}
