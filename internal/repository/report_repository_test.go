package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeForwardsInclusiveWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewReportRepo(db)

	// The exact window endpoints must reach the BETWEEN predicate
	// unchanged: BETWEEN is inclusive on both sides, so shifting either
	// bound by a second would move reservations created exactly at the
	// start or at the :59:59 end in or out of the report.
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(`WHERE r\.created_at BETWEEN \? AND \?`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count", "clients", "flights", "revenue"}).
			AddRow(7, 4, 2, 350_000))

	s, err := repo.Summarize(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01T00:00:00Z", s.Start)
	assert.Equal(t, "2026-03-31T23:59:59Z", s.End)
	assert.Equal(t, int64(7), s.Reservations)
	assert.Equal(t, int64(350_000), s.RevenueCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}
