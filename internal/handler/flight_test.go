package handler

import (
	"net/http"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroreserva/airline-reservation/internal/repository"
)

func newFlightHandlerTest(t *testing.T) (*FlightAdminHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewFlightAdminHandler(repository.NewFlightRepo(db)), mock
}

const validFlightBody = `{
	"airline": "AeroReserva",
	"flight_number": "AR404",
	"origin": "MEX",
	"destination": "BOG",
	"departs_at": "2026-04-01T09:00:00Z",
	"arrives_at": "2026-04-01T13:30:00Z",
	"price_cents": 250000,
	"seats_total": 180,
	"aircraft": "A320",
	"pilot_id": 4,
	"copilot_id": 5
}`

func TestCreateFlight(t *testing.T) {
	t.Run("creates a scheduled flight with a full cabin", func(t *testing.T) {
		h, mock := newFlightHandlerTest(t)

		mock.ExpectExec(`INSERT INTO flights`).
			WithArgs("AeroReserva", "AR404", "MEX", "BOG",
				sqlmock.AnyArg(), sqlmock.AnyArg(),
				250000, 180, 180, "A320",
				4, 5, nil, nil, nil, "SCHEDULED").
			WillReturnResult(sqlmock.NewResult(3, 1))

		c, rec := jsonContext(t, http.MethodPost, "/v1/vuelos", validFlightBody, 1, nil)
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"seats_available":180`)
		assert.Contains(t, rec.Body.String(), `"SCHEDULED"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects arrival before departure", func(t *testing.T) {
		h, mock := newFlightHandlerTest(t)

		body := `{
			"airline": "AeroReserva", "flight_number": "AR405",
			"origin": "MEX", "destination": "BOG",
			"departs_at": "2026-04-01T13:30:00Z",
			"arrives_at": "2026-04-01T09:00:00Z",
			"price_cents": 250000, "seats_total": 180, "pilot_id": 4
		}`
		c, rec := jsonContext(t, http.MethodPost, "/v1/vuelos", body, 1, nil)
		require.NoError(t, h.Create(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "arrives_at must be after departs_at")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetFlightStatus(t *testing.T) {
	t.Run("moves a flight to COMPLETED", func(t *testing.T) {
		h, mock := newFlightHandlerTest(t)

		mock.ExpectExec(`UPDATE flights SET status = \? WHERE id = \?`).
			WithArgs("COMPLETED", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, rec := jsonContext(t, http.MethodPatch, "/v1/vuelos/3/estado", `{"status":"completed"}`, 1,
			map[string]string{"id": "3"})
		require.NoError(t, h.SetStatus(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"COMPLETED"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a status outside the closed set", func(t *testing.T) {
		h, mock := newFlightHandlerTest(t)

		c, rec := jsonContext(t, http.MethodPatch, "/v1/vuelos/3/estado", `{"status":"TELEPORTING"}`, 1,
			map[string]string{"id": "3"})
		require.NoError(t, h.SetStatus(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteFlight(t *testing.T) {
	t.Run("missing flight is a 404", func(t *testing.T) {
		h, mock := newFlightHandlerTest(t)

		mock.ExpectExec(`DELETE FROM flights WHERE id = \?`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		c, rec := jsonContext(t, http.MethodDelete, "/v1/vuelos/99", "", 1,
			map[string]string{"id": "99"})
		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
