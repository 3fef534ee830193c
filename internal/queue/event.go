// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationPaidEvent is published when a payment capture webhook
// transitions a reservation to PAID.  It carries enough information for
// downstream consumers to produce a receipt without querying the
// primary database.
type ReservationPaidEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	FlightID      uint64 `json:"flight_id"`
	FlightNumber  string `json:"flight_number"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	SeatCount     uint32 `json:"seat_count"`
	TotalCents    int64  `json:"total_cents"`
	Provider      string `json:"provider"`
	PaymentRef    string `json:"payment_ref"`
	PaidAt        string `json:"paid_at"`
}
