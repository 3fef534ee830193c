package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/aeroreserva/airline-reservation/internal/config"
	"github.com/aeroreserva/airline-reservation/internal/handler"
	"github.com/aeroreserva/airline-reservation/internal/middleware"
	"github.com/aeroreserva/airline-reservation/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CLIENTE role.  Customers can book
// seats on a flight, list and cancel their own reservations, and start
// a payment checkout.  Booking is rate limited per user with a Redis
// token bucket so a single client cannot hammer the seat counters.
func RegisterCustomer(e *echo.Echo, r *handler.ReservationHandler, pay *handler.PaymentHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCliente),
	)

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g.POST("/reservaciones/:flightId", r.Create, limit)
	g.GET("/reservaciones", r.List)
	g.DELETE("/reservaciones/:id", r.Cancel, limit)

	// Checkout issues a provider session reference; the matching capture
	// webhook is registered on the public router.
	g.POST("/reservaciones/:id/checkout/:provider", pay.Checkout, limit)
}
