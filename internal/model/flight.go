package model

import "time"

// Flight statuses.  Transitions are driven by administrators and are
// deliberately unconstrained: an ADMIN may move a flight to any status.
// COMPLETED is the terminal value payroll uses to select eligible flights.
const (
	FlightScheduled = "SCHEDULED"
	FlightDelayed   = "DELAYED"
	FlightCancelled = "CANCELLED"
	FlightBoarding  = "BOARDING"
	FlightInFlight  = "IN_FLIGHT"
	FlightCompleted = "COMPLETED"
)

// ValidFlightStatus reports whether s is a member of the closed status set.
func ValidFlightStatus(s string) bool {
	switch s {
	case FlightScheduled, FlightDelayed, FlightCancelled,
		FlightBoarding, FlightInFlight, FlightCompleted:
		return true
	}
	return false
}

// Flight represents a scheduled route instance with a fixed seat capacity
// and an assigned crew.  This struct corresponds to a row in the `flights`
// table.  SeatsAvailable is the only field mutated outside of admin flight
// management; the reservation flow decrements and restores it through a
// conditional UPDATE so it can never go negative.
//
// Fields:
//  ID             – primary key identifier.
//  Airline        – marketing carrier name.
//  FlightNumber   – public flight designator (e.g. AR404).
//  Origin         – IATA code or city of departure.
//  Destination    – IATA code or city of arrival.
//  DepartsAt      – scheduled departure time (UTC).
//  ArrivesAt      – scheduled arrival time (UTC); payroll windows filter on it.
//  PriceCents     – price per seat in cents.
//  SeatsTotal     – total capacity of the aircraft cabin.
//  SeatsAvailable – remaining unreserved seats, always >= 0.
//  Aircraft       – equipment type (e.g. A320).
//  PilotID        – user ID of the pilot of record.
//  CopilotID      – user ID of the copilot (nil when single-pilot).
//  Attendant1ID,
//  Attendant2ID,
//  Attendant3ID   – user IDs of up to three flight attendants.
//  Status         – one of the Flight* constants above.
//  CreatedAt      – timestamp when the flight was created.
//  UpdatedAt      – timestamp of last update.
type Flight struct {
	ID             uint64    `json:"id"`              // flights.id
	Airline        string    `json:"airline"`         // flights.airline
	FlightNumber   string    `json:"flight_number"`   // flights.flight_number
	Origin         string    `json:"origin"`          // flights.origin
	Destination    string    `json:"destination"`     // flights.destination
	DepartsAt      time.Time `json:"departs_at"`      // flights.departs_at
	ArrivesAt      time.Time `json:"arrives_at"`      // flights.arrives_at
	PriceCents     int64     `json:"price_cents"`     // flights.price_cents
	SeatsTotal     uint32    `json:"seats_total"`     // flights.seats_total
	SeatsAvailable uint32    `json:"seats_available"` // flights.seats_available
	Aircraft       string    `json:"aircraft"`        // flights.aircraft
	PilotID        uint64    `json:"pilot_id"`        // flights.pilot_id
	CopilotID      *uint64   `json:"copilot_id,omitempty"`    // flights.copilot_id (nullable)
	Attendant1ID   *uint64   `json:"attendant1_id,omitempty"` // flights.attendant1_id (nullable)
	Attendant2ID   *uint64   `json:"attendant2_id,omitempty"` // flights.attendant2_id (nullable)
	Attendant3ID   *uint64   `json:"attendant3_id,omitempty"` // flights.attendant3_id (nullable)
	Status         string    `json:"status"`          // flights.status
	CreatedAt      time.Time `json:"created_at"`      // flights.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // flights.updated_at
}
