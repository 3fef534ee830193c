package repository

import (
	"context"
	"database/sql"
	"time"
)

// CrewFlightCounts aggregates a crew member's completed flights inside a
// payroll window.  AsPilot and AsCopilot are only populated for pilots;
// AsAttendant only for attendants.
type CrewFlightCounts struct {
	AsPilot     int
	AsCopilot   int
	AsAttendant int
}

// PayrollRepo runs the read-side aggregation queries the payroll engine
// consumes.  Eligibility is status = COMPLETED with arrives_at inside
// the inclusive window; the window endpoints are computed by the engine.
type PayrollRepo struct {
	db *sql.DB
}

// NewPayrollRepo returns a new PayrollRepo bound to the given database.
func NewPayrollRepo(db *sql.DB) *PayrollRepo { return &PayrollRepo{db: db} }

// PilotCounts returns, per user ID, the number of completed flights in
// [start, end] flown as pilot of record and as copilot.  Users with no
// flights simply have no entry in the map.
func (r *PayrollRepo) PilotCounts(ctx context.Context, start, end time.Time) (map[uint64]CrewFlightCounts, error) {
	counts := make(map[uint64]CrewFlightCounts)
	const asPilot = `SELECT pilot_id, COUNT(*)
					 FROM flights
					 WHERE status = 'COMPLETED' AND arrives_at BETWEEN ? AND ?
					 GROUP BY pilot_id`
	if err := r.mergeCounts(ctx, counts, asPilot, start, end, func(c *CrewFlightCounts, n int) { c.AsPilot = n }); err != nil {
		return nil, err
	}
	const asCopilot = `SELECT copilot_id, COUNT(*)
					   FROM flights
					   WHERE copilot_id IS NOT NULL AND status = 'COMPLETED' AND arrives_at BETWEEN ? AND ?
					   GROUP BY copilot_id`
	if err := r.mergeCounts(ctx, counts, asCopilot, start, end, func(c *CrewFlightCounts, n int) { c.AsCopilot = n }); err != nil {
		return nil, err
	}
	return counts, nil
}

// AttendantCounts returns, per user ID, the number of completed flights
// in [start, end] served in any of the three attendant slots.
func (r *PayrollRepo) AttendantCounts(ctx context.Context, start, end time.Time) (map[uint64]CrewFlightCounts, error) {
	counts := make(map[uint64]CrewFlightCounts)
	// One flight can only count once per attendant because each slot
	// holds a distinct user; the UNION ALL therefore never double counts.
	const q = `SELECT attendant_id, COUNT(*) FROM (
				   SELECT attendant1_id AS attendant_id FROM flights
				   WHERE attendant1_id IS NOT NULL AND status = 'COMPLETED' AND arrives_at BETWEEN ? AND ?
				   UNION ALL
				   SELECT attendant2_id FROM flights
				   WHERE attendant2_id IS NOT NULL AND status = 'COMPLETED' AND arrives_at BETWEEN ? AND ?
				   UNION ALL
				   SELECT attendant3_id FROM flights
				   WHERE attendant3_id IS NOT NULL AND status = 'COMPLETED' AND arrives_at BETWEEN ? AND ?
			   ) a GROUP BY attendant_id`
	rows, err := r.db.QueryContext(ctx, q,
		start.UTC(), end.UTC(), start.UTC(), end.UTC(), start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		c := counts[id]
		c.AsAttendant = n
		counts[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *PayrollRepo) mergeCounts(ctx context.Context, counts map[uint64]CrewFlightCounts, q string, start, end time.Time, set func(*CrewFlightCounts, int)) error {
	rows, err := r.db.QueryContext(ctx, q, start.UTC(), end.UTC())
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return err
		}
		c := counts[id]
		set(&c, n)
		counts[id] = c
	}
	return rows.Err()
}
