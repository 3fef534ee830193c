package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aeroreserva/airline-reservation/internal/model"
)

// FlightRepo provides persistence for flights, including the seat
// inventory counter the reservation flow depends on.  All timestamp
// fields are stored in UTC.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a new FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning flights and reservations.
func (r *FlightRepo) DB() *sql.DB { return r.db }

const flightColumns = `id, airline, flight_number, origin, destination, departs_at, arrives_at,
	   price_cents, seats_total, seats_available, aircraft,
	   pilot_id, copilot_id, attendant1_id, attendant2_id, attendant3_id,
	   status, created_at, updated_at`

func scanFlight(row interface{ Scan(...interface{}) error }) (*model.Flight, error) {
	var f model.Flight
	var copilot, att1, att2, att3 sql.NullInt64
	err := row.Scan(
		&f.ID, &f.Airline, &f.FlightNumber, &f.Origin, &f.Destination,
		&f.DepartsAt, &f.ArrivesAt, &f.PriceCents, &f.SeatsTotal, &f.SeatsAvailable,
		&f.Aircraft, &f.PilotID, &copilot, &att1, &att2, &att3,
		&f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.CopilotID = nullID(copilot)
	f.Attendant1ID = nullID(att1)
	f.Attendant2ID = nullID(att2)
	f.Attendant3ID = nullID(att3)
	return &f, nil
}

func nullID(n sql.NullInt64) *uint64 {
	if !n.Valid {
		return nil
	}
	id := uint64(n.Int64)
	return &id
}

func idArg(p *uint64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// Create inserts a new flight.  seats_available starts equal to
// seats_total and status defaults to SCHEDULED unless the caller sets
// another valid status.  The generated ID is populated on f.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	if f.Status == "" {
		f.Status = model.FlightScheduled
	}
	if f.SeatsAvailable == 0 {
		f.SeatsAvailable = f.SeatsTotal
	}
	const q = `INSERT INTO flights
		(airline, flight_number, origin, destination, departs_at, arrives_at,
		 price_cents, seats_total, seats_available, aircraft,
		 pilot_id, copilot_id, attendant1_id, attendant2_id, attendant3_id, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		f.Airline, f.FlightNumber, f.Origin, f.Destination,
		f.DepartsAt.UTC(), f.ArrivesAt.UTC(),
		f.PriceCents, f.SeatsTotal, f.SeatsAvailable, f.Aircraft,
		f.PilotID, idArg(f.CopilotID), idArg(f.Attendant1ID), idArg(f.Attendant2ID), idArg(f.Attendant3ID),
		f.Status,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID fetches a single flight.  It returns ErrFlightNotFound when
// no row matches.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	f, err := scanFlight(r.db.QueryRowContext(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrFlightNotFound
	}
	return f, err
}

// List returns all flights ordered by departure time ascending.
func (r *FlightRepo) List(ctx context.Context) ([]model.Flight, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+flightColumns+` FROM flights ORDER BY departs_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

// Search returns flights filtered by optional origin, destination and a
// departure calendar day.  Empty filters are ignored; the day filter
// matches DATE(departs_at).
func (r *FlightRepo) Search(ctx context.Context, origin, destination, day string) ([]model.Flight, error) {
	q := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`
	args := make([]interface{}, 0, 3)
	if origin != "" {
		q += ` AND origin = ?`
		args = append(args, origin)
	}
	if destination != "" {
		q += ` AND destination = ?`
		args = append(args, destination)
	}
	if day != "" {
		q += ` AND DATE(departs_at) = ?`
		args = append(args, day)
	}
	q += ` ORDER BY departs_at ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func collectFlights(rows *sql.Rows) ([]model.Flight, error) {
	flights := make([]model.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return flights, nil
}

// Update rewrites the mutable fields of a flight.  Seat counters are
// intentionally excluded: seats_available is owned by the reservation
// flow and seats_total is fixed at creation.
func (r *FlightRepo) Update(ctx context.Context, f *model.Flight) error {
	const q = `UPDATE flights SET
		airline = ?, flight_number = ?, origin = ?, destination = ?,
		departs_at = ?, arrives_at = ?, price_cents = ?, aircraft = ?,
		pilot_id = ?, copilot_id = ?, attendant1_id = ?, attendant2_id = ?, attendant3_id = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		f.Airline, f.FlightNumber, f.Origin, f.Destination,
		f.DepartsAt.UTC(), f.ArrivesAt.UTC(), f.PriceCents, f.Aircraft,
		f.PilotID, idArg(f.CopilotID), idArg(f.Attendant1ID), idArg(f.Attendant2ID), idArg(f.Attendant3ID),
		f.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is zero both for a missing row and for a no-op
		// update; disambiguate with an existence read.
		if _, err := r.GetByID(ctx, f.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus moves a flight to the given status.  Transitions are
// admin-driven and unconstrained; only membership in the closed status
// set is validated by the handler.
func (r *FlightRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flights SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a flight.  Flights with reservations are protected by
// the FK and reported as ErrConflict.
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flights WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFlightNotFound
	}
	return nil
}

// ReserveSeatsTx decrements seats_available by seatCount in a single
// conditional UPDATE.  The compound predicate collapses the
// check-then-act race into one atomic statement: two concurrent
// requests can never both succeed against the same remaining seats.
// When the update matches no row, a follow-up existence read
// distinguishes ErrFlightNotFound from ErrInsufficientSeats.
func (r *FlightRepo) ReserveSeatsTx(ctx context.Context, tx *sql.Tx, flightID uint64, seatCount uint32) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE flights SET seats_available = seats_available - ?
		 WHERE id = ? AND seats_available >= ?`,
		seatCount, flightID, seatCount)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM flights WHERE id = ?)`, flightID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrFlightNotFound
	}
	return ErrInsufficientSeats
}

// RestoreSeatsTx returns seatCount seats to the flight after a
// cancellation.  It reports the number of rows touched so callers can
// log a reconciliation warning when the owning flight has vanished.
func (r *FlightRepo) RestoreSeatsTx(ctx context.Context, tx *sql.Tx, flightID uint64, seatCount uint32) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE flights SET seats_available = seats_available + ? WHERE id = ?`,
		seatCount, flightID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
