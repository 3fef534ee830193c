package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroreserva/airline-reservation/internal/repository"
)

const reservationColumns = "id, user_id, flight_id, seat_count, payment_state, payment_ref, payment_provider, created_at, updated_at"

func newReservationHandlerTest(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewReservationHandler(repository.NewFlightRepo(db), repository.NewReservationRepo(db)), mock
}

// jsonContext builds an echo context carrying an authenticated user and
// optional path parameters, the way the JWT and routing layers would.
func jsonContext(t *testing.T, method, target, body string, userID uint64, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func reservationRow(id, userID, flightID uint64, seats uint32, state string) *sqlmock.Rows {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(strings.Split(strings.ReplaceAll(reservationColumns, " ", ""), ",")).
		AddRow(id, userID, flightID, seats, state, nil, nil, now, now)
}

func TestCreateReservation(t *testing.T) {
	t.Run("books seats and commits", func(t *testing.T) {
		h, mock := newReservationHandlerTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE flights SET seats_available = seats_available - \? WHERE id = \? AND seats_available >= \?`).
			WithArgs(2, 7, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO reservations \(user_id, flight_id, seat_count, payment_state\)`).
			WithArgs(1, 7, 2, "UNPAID").
			WillReturnResult(sqlmock.NewResult(11, 1))
		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = \?`).
			WithArgs(11).
			WillReturnRows(reservationRow(11, 1, 7, 2, "UNPAID"))
		mock.ExpectCommit()

		c, rec := jsonContext(t, http.MethodPost, "/v1/reservaciones/7", `{"seat_count":2}`, 1,
			map[string]string{"flightId": "7"})
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reservation"`)
		assert.Contains(t, rec.Body.String(), `"UNPAID"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient seats rolls back", func(t *testing.T) {
		h, mock := newReservationHandlerTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE flights SET seats_available = seats_available - \?`).
			WithArgs(5, 7, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM flights WHERE id = \?\)`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))
		mock.ExpectRollback()

		c, rec := jsonContext(t, http.MethodPost, "/v1/reservaciones/7", `{"seat_count":5}`, 1,
			map[string]string{"flightId": "7"})
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "insufficient seats")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing flight is a 404", func(t *testing.T) {
		h, mock := newReservationHandlerTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE flights SET seats_available = seats_available - \?`).
			WithArgs(1, 999, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM flights WHERE id = \?\)`).
			WithArgs(999).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(0))
		mock.ExpectRollback()

		c, rec := jsonContext(t, http.MethodPost, "/v1/reservaciones/999", `{"seat_count":1}`, 1,
			map[string]string{"flightId": "999"})
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects non-positive seat count without touching the database", func(t *testing.T) {
		h, mock := newReservationHandlerTest(t)

		c, rec := jsonContext(t, http.MethodPost, "/v1/reservaciones/7", `{"seat_count":0}`, 1,
			map[string]string{"flightId": "7"})
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelReservation(t *testing.T) {
	t.Run("deletes the row and restores seats in one transaction", func(t *testing.T) {
		h, mock := newReservationHandlerTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = \?`).
			WithArgs(11).
			WillReturnRows(reservationRow(11, 1, 7, 2, "UNPAID"))
		mock.ExpectExec(`DELETE FROM reservations WHERE id = \?`).
			WithArgs(11).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE flights SET seats_available = seats_available \+ \? WHERE id = \?`).
			WithArgs(2, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c, rec := jsonContext(t, http.MethodDelete, "/v1/reservaciones/11", "", 1,
			map[string]string{"id": "11"})
		require.NoError(t, h.Cancel(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reservation"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another user's reservation is forbidden", func(t *testing.T) {
		h, mock := newReservationHandlerTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = \?`).
			WithArgs(11).
			WillReturnRows(reservationRow(11, 99, 7, 2, "UNPAID"))
		mock.ExpectRollback()

		c, rec := jsonContext(t, http.MethodDelete, "/v1/reservaciones/11", "", 1,
			map[string]string{"id": "11"})
		require.NoError(t, h.Cancel(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown reservation is a 404", func(t *testing.T) {
		h, mock := newReservationHandlerTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = \?`).
			WithArgs(404).
			WillReturnRows(sqlmock.NewRows(strings.Split(strings.ReplaceAll(reservationColumns, " ", ""), ",")))
		mock.ExpectRollback()

		c, rec := jsonContext(t, http.MethodDelete, "/v1/reservaciones/404", "", 1,
			map[string]string{"id": "404"})
		require.NoError(t, h.Cancel(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
