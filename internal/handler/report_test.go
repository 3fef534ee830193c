package handler

import (
	"net/http"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroreserva/airline-reservation/internal/repository"
)

func newReportHandlerTest(t *testing.T, now time.Time) (*ReportHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	h := NewReportHandler(repository.NewReportRepo(db))
	h.now = func() time.Time { return now }
	return h, mock
}

func summaryRows(reservations, clients, flights, revenue int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count", "clients", "flights", "revenue"}).
		AddRow(reservations, clients, flights, revenue)
}

func TestReports(t *testing.T) {
	// Wednesday 2026-03-11; its ISO week runs Monday the 9th through
	// Sunday the 15th.
	now := time.Date(2026, 3, 11, 15, 4, 5, 0, time.UTC)

	t.Run("weekly window spans monday through sunday", func(t *testing.T) {
		h, mock := newReportHandlerTest(t, now)

		mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(DISTINCT r\.user_id\)`).
			WithArgs(
				time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC),
			).
			WillReturnRows(summaryRows(12, 5, 3, 480_000))

		c, rec := jsonContext(t, http.MethodGet, "/v1/reportes/semanal", "", 1, nil)
		require.NoError(t, h.Weekly(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ingresos_cents":480000`)
		assert.Contains(t, rec.Body.String(), `"inicio":"2026-03-09T00:00:00Z"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("monthly report with no activity reports zeroes", func(t *testing.T) {
		h, mock := newReportHandlerTest(t, now)

		mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(DISTINCT r\.user_id\)`).
			WithArgs(
				time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
			).
			WillReturnRows(summaryRows(0, 0, 0, 0))

		c, rec := jsonContext(t, http.MethodGet, "/v1/reportes/mensual", "", 1, nil)
		require.NoError(t, h.Monthly(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reservaciones":0`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("annual window spans the calendar year", func(t *testing.T) {
		h, mock := newReportHandlerTest(t, now)

		mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(DISTINCT r\.user_id\)`).
			WithArgs(
				time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
			).
			WillReturnRows(summaryRows(240, 80, 40, 9_600_000))

		c, rec := jsonContext(t, http.MethodGet, "/v1/reportes/anual", "", 1, nil)
		require.NoError(t, h.Annual(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"inicio":"2026-01-01T00:00:00Z"`)
		assert.Contains(t, rec.Body.String(), `"fin":"2026-12-31T23:59:59Z"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clients report lists spenders", func(t *testing.T) {
		h, mock := newReportHandlerTest(t, now)

		mock.ExpectQuery(`SELECT u\.id, u\.name, u\.email`).
			WillReturnRows(sqlmock.NewRows(
				[]string{"id", "name", "email", "count", "seats", "spend"}).
				AddRow(1, "Ana", "ana@example.com", 4, 9, 900_000).
				AddRow(2, "Luis", "luis@example.com", 1, 1, 120_000))

		c, rec := jsonContext(t, http.MethodGet, "/v1/reportes/clientes", "", 1, nil)
		require.NoError(t, h.Clients(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"gasto_cents":900000`)
		assert.Contains(t, rec.Body.String(), `"reporteClientes"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
