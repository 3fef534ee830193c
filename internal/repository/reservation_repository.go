package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/aeroreserva/airline-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation claims seat_count seats on one flight; the matching seat
// decrement is performed by FlightRepo.ReserveSeatsTx inside the same
// transaction.  All timestamp fields are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateTx inserts a new reservation within the scope of an existing
// transaction.  It populates the generated ID and timestamps on the
// provided record.  The caller must commit or rollback the transaction.
// PaymentState starts UNPAID.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	if res.PaymentState == "" {
		res.PaymentState = model.PaymentUnpaid
	}
	const q = `INSERT INTO reservations (user_id, flight_id, seat_count, payment_state) VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.UserID, res.FlightID, res.SeatCount, res.PaymentState)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT id, user_id, flight_id, seat_count, payment_state, payment_ref, payment_provider, created_at, updated_at
				 FROM reservations WHERE id = ?`
	var ref, provider sql.NullString
	err = tx.QueryRowContext(ctx, sel, res.ID).Scan(
		&res.ID, &res.UserID, &res.FlightID, &res.SeatCount, &res.PaymentState,
		&ref, &provider, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	res.PaymentRef = nullStr(ref)
	res.PaymentProvider = nullStr(provider)
	return nil
}

func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// GetForUserTx loads a reservation within a transaction and validates
// that it belongs to the specified user.  It returns sql.ErrNoRows when
// the reservation does not exist and ErrForbidden when it belongs to a
// different user.
func (r *ReservationRepo) GetForUserTx(ctx context.Context, tx *sql.Tx, reservationID, userID uint64) (*model.Reservation, error) {
	const q = `SELECT id, user_id, flight_id, seat_count, payment_state, payment_ref, payment_provider, created_at, updated_at
			   FROM reservations WHERE id = ?`
	var res model.Reservation
	var ref, provider sql.NullString
	err := tx.QueryRowContext(ctx, q, reservationID).Scan(
		&res.ID, &res.UserID, &res.FlightID, &res.SeatCount, &res.PaymentState,
		&ref, &provider, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrForbidden
	}
	res.PaymentRef = nullStr(ref)
	res.PaymentProvider = nullStr(provider)
	return &res, nil
}

// GetForUser is the non-transactional variant of GetForUserTx, used by
// read paths that do not touch seat counters.
func (r *ReservationRepo) GetForUser(ctx context.Context, reservationID, userID uint64) (*model.Reservation, error) {
	const q = `SELECT id, user_id, flight_id, seat_count, payment_state, payment_ref, payment_provider, created_at, updated_at
			   FROM reservations WHERE id = ?`
	var res model.Reservation
	var ref, provider sql.NullString
	err := r.db.QueryRowContext(ctx, q, reservationID).Scan(
		&res.ID, &res.UserID, &res.FlightID, &res.SeatCount, &res.PaymentState,
		&ref, &provider, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrForbidden
	}
	res.PaymentRef = nullStr(ref)
	res.PaymentProvider = nullStr(provider)
	return &res, nil
}

// DeleteTx removes a reservation within the provided transaction.  The
// caller is responsible for restoring the flight's seats and for
// committing or rolling back.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, reservationID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, reservationID)
	return err
}

// ReservationDetail encapsulates a reservation along with the flight it
// claims seats on.  It is returned by ListByUser for display to
// customers.
type ReservationDetail struct {
	ID           uint64  `json:"id"`
	FlightID     uint64  `json:"flight_id"`
	SeatCount    uint32  `json:"seat_count"`
	PaymentState string  `json:"payment_state"`
	PaymentRef   *string `json:"payment_ref,omitempty"`
	TotalCents   int64   `json:"total_cents"`
	CreatedAt    string  `json:"created_at"`
	Flight       struct {
		Airline      string `json:"airline"`
		FlightNumber string `json:"flight_number"`
		Origin       string `json:"origin"`
		Destination  string `json:"destination"`
		DepartsAt    string `json:"departs_at"`
		ArrivesAt    string `json:"arrives_at"`
		Status       string `json:"status"`
	} `json:"flight"`
}

// ListByUser returns all reservations for the given user with embedded
// flight detail, newest first.  When no reservations exist, an empty
// slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.flight_id, r.seat_count, r.payment_state, r.payment_ref, r.created_at,
					  f.airline, f.flight_number, f.origin, f.destination,
					  f.departs_at, f.arrives_at, f.status, f.price_cents
			   FROM reservations r
			   JOIN flights f ON f.id = r.flight_id
			   WHERE r.user_id = ?
			   ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var ref sql.NullString
		var createdAt, departsAt, arrivesAt time.Time
		var priceCents int64
		if err := rows.Scan(
			&d.ID, &d.FlightID, &d.SeatCount, &d.PaymentState, &ref, &createdAt,
			&d.Flight.Airline, &d.Flight.FlightNumber, &d.Flight.Origin, &d.Flight.Destination,
			&departsAt, &arrivesAt, &d.Flight.Status, &priceCents,
		); err != nil {
			return nil, err
		}
		d.PaymentRef = nullStr(ref)
		d.TotalCents = int64(d.SeatCount) * priceCents
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		d.Flight.DepartsAt = departsAt.UTC().Format(time.RFC3339)
		d.Flight.ArrivesAt = arrivesAt.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// AttachPaymentRef records the provider session reference issued at
// checkout so the capture webhook can match the reservation later.
func (r *ReservationRepo) AttachPaymentRef(ctx context.Context, reservationID uint64, provider, ref string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET payment_provider = ?, payment_ref = ? WHERE id = ?`,
		provider, ref, reservationID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkPaidByRef transitions the reservation matching the provider
// reference to PAID and returns it.  The UPDATE is restricted to UNPAID
// rows so replayed webhooks become no-ops; the reservation is still
// returned in that case so callers can answer idempotently.
func (r *ReservationRepo) MarkPaidByRef(ctx context.Context, provider, ref string) (*model.Reservation, bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET payment_state = ?
		 WHERE payment_provider = ? AND payment_ref = ? AND payment_state = ?`,
		model.PaymentPaid, provider, ref, model.PaymentUnpaid)
	if err != nil {
		return nil, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	const sel = `SELECT id, user_id, flight_id, seat_count, payment_state, payment_ref, payment_provider, created_at, updated_at
				 FROM reservations WHERE payment_provider = ? AND payment_ref = ?`
	var m model.Reservation
	var prRef, prProv sql.NullString
	err = r.db.QueryRowContext(ctx, sel, provider, ref).Scan(
		&m.ID, &m.UserID, &m.FlightID, &m.SeatCount, &m.PaymentState,
		&prRef, &prProv, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, false, err
	}
	m.PaymentRef = nullStr(prRef)
	m.PaymentProvider = nullStr(prProv)
	return &m, n > 0, nil
}
