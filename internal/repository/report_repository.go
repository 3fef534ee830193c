package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReportSummary aggregates reservation activity over a date window.
// Zero values are a valid result, not an error: an empty window simply
// reports zeroes.
type ReportSummary struct {
	Start           string `json:"inicio"`
	End             string `json:"fin"`
	Reservations    int64  `json:"reservaciones"`
	DistinctClients int64  `json:"clientes"`
	DistinctFlights int64  `json:"vuelos"`
	RevenueCents    int64  `json:"ingresos_cents"`
}

// ClientReportLine summarizes one client's reservation activity across
// all time for the /reportes/clientes endpoint.
type ClientReportLine struct {
	UserID       uint64 `json:"user_id"`
	Name         string `json:"nombre"`
	Email        string `json:"email"`
	Reservations int64  `json:"reservaciones"`
	SeatsBooked  int64  `json:"asientos"`
	SpendCents   int64  `json:"gasto_cents"`
}

// ReportRepo runs the read-side aggregation queries behind the report
// endpoints.  It never mutates state.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo returns a new ReportRepo bound to the given database.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// Summarize aggregates reservations created inside [start, end]
// inclusive: reservation count, distinct clients, distinct flights and
// revenue as seat_count times the flight's price.
func (r *ReportRepo) Summarize(ctx context.Context, start, end time.Time) (*ReportSummary, error) {
	// BETWEEN is inclusive at both endpoints, so a reservation created
	// exactly at the window start or at the :59:59 end counts; one
	// second before the start does not.  The window builders produce
	// endpoints with that inclusivity in mind.
	const q = `SELECT COUNT(*),
					  COUNT(DISTINCT r.user_id),
					  COUNT(DISTINCT r.flight_id),
					  COALESCE(SUM(r.seat_count * f.price_cents), 0)
			   FROM reservations r
			   JOIN flights f ON f.id = r.flight_id
			   WHERE r.created_at BETWEEN ? AND ?`
	s := &ReportSummary{
		Start: start.UTC().Format(time.RFC3339),
		End:   end.UTC().Format(time.RFC3339),
	}
	err := r.db.QueryRowContext(ctx, q, start.UTC(), end.UTC()).Scan(
		&s.Reservations, &s.DistinctClients, &s.DistinctFlights, &s.RevenueCents,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Clients returns one line per client who has at least one reservation,
// ordered by spend descending.
func (r *ReportRepo) Clients(ctx context.Context) ([]ClientReportLine, error) {
	const q = `SELECT u.id, u.name, u.email,
					  COUNT(r.id),
					  COALESCE(SUM(r.seat_count), 0),
					  COALESCE(SUM(r.seat_count * f.price_cents), 0) AS spend
			   FROM users u
			   JOIN reservations r ON r.user_id = u.id
			   JOIN flights f ON f.id = r.flight_id
			   GROUP BY u.id, u.name, u.email
			   ORDER BY spend DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lines := make([]ClientReportLine, 0)
	for rows.Next() {
		var l ClientReportLine
		if err := rows.Scan(&l.UserID, &l.Name, &l.Email, &l.Reservations, &l.SeatsBooked, &l.SpendCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
