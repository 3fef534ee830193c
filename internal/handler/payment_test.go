package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroreserva/airline-reservation/internal/payment"
	"github.com/aeroreserva/airline-reservation/internal/repository"
)

const stripeTestSecret = "whsec_test"

func newPaymentHandlerTest(t *testing.T) (*PaymentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	providers := payment.NewRegistry(stripeTestSecret, "")
	return NewPaymentHandler(providers,
		repository.NewReservationRepo(db), repository.NewFlightRepo(db)), mock
}

func webhookContext(t *testing.T, provider, body, signature string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/pagos/webhook/"+provider, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("X-Webhook-Signature", signature)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues(provider)
	return c, rec
}

func TestCheckout(t *testing.T) {
	t.Run("attaches a session reference to an unpaid reservation", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = \?`).
			WithArgs(11).
			WillReturnRows(reservationRow(11, 1, 7, 2, "UNPAID"))
		mock.ExpectExec(`UPDATE reservations SET payment_provider = \?, payment_ref = \? WHERE id = \?`).
			WithArgs("stripe", sqlmock.AnyArg(), 11).
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, rec := jsonContext(t, http.MethodPost, "/v1/reservaciones/11/checkout/stripe", "", 1,
			map[string]string{"id": "11", "provider": "stripe"})
		require.NoError(t, h.Checkout(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"payment_ref":"stripe_`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already paid reservation is a conflict", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = \?`).
			WithArgs(11).
			WillReturnRows(reservationRow(11, 1, 7, 2, "PAID"))

		c, rec := jsonContext(t, http.MethodPost, "/v1/reservaciones/11/checkout/stripe", "", 1,
			map[string]string{"id": "11", "provider": "stripe"})
		require.NoError(t, h.Checkout(c))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE id = \?`).
			WithArgs(11).
			WillReturnRows(reservationRow(11, 1, 7, 2, "UNPAID"))

		c, rec := jsonContext(t, http.MethodPost, "/v1/reservaciones/11/checkout/venmo", "", 1,
			map[string]string{"id": "11", "provider": "venmo"})
		require.NoError(t, h.Checkout(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWebhook(t *testing.T) {
	body := `{"type":"payment.captured","ref":"stripe_abc","amount_cents":25000,"currency":"USD"}`

	t.Run("rejects a bad signature before reading anything", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		c, rec := webhookContext(t, "stripe", body, "deadbeef")
		require.NoError(t, h.Webhook(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a disabled provider", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		// The paypal secret is empty in this registry, so even a
		// correctly computed signature must be refused.
		c, rec := webhookContext(t, "paypal", body, payment.Sign("", []byte(body)))
		require.NoError(t, h.Webhook(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a signed payload without a reference", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		empty := `{"type":"payment.captured"}`
		c, rec := webhookContext(t, "stripe", empty, payment.Sign(stripeTestSecret, []byte(empty)))
		require.NoError(t, h.Webhook(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replayed capture answers 200 without side effects", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		mock.ExpectExec(`UPDATE reservations SET payment_state = \?`).
			WithArgs("PAID", "stripe", "stripe_abc", "UNPAID").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT ` + reservationColumns + ` FROM reservations WHERE payment_provider = \? AND payment_ref = \?`).
			WithArgs("stripe", "stripe_abc").
			WillReturnRows(reservationRow(11, 1, 7, 2, "PAID"))

		c, rec := webhookContext(t, "stripe", body, payment.Sign(stripeTestSecret, []byte(body)))
		require.NoError(t, h.Webhook(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "already_paid")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown reference is a 404", func(t *testing.T) {
		h, mock := newPaymentHandlerTest(t)

		unknown := `{"type":"payment.captured","ref":"stripe_nope"}`
		mock.ExpectExec(`UPDATE reservations SET payment_state = \?`).
			WithArgs("PAID", "stripe", "stripe_nope", "UNPAID").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT `+reservationColumns+` FROM reservations WHERE payment_provider = \? AND payment_ref = \?`).
			WithArgs("stripe", "stripe_nope").
			WillReturnRows(sqlmock.NewRows(strings.Split(strings.ReplaceAll(reservationColumns, " ", ""), ",")))

		c, rec := webhookContext(t, "stripe", unknown, payment.Sign(stripeTestSecret, []byte(unknown)))
		require.NoError(t, h.Webhook(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
