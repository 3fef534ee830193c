package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/aeroreserva/airline-reservation/internal/config"
	"github.com/aeroreserva/airline-reservation/internal/handler"
	"github.com/aeroreserva/airline-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probe this endpoint to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while the profile endpoint lives under /v1 behind the JWT
// middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout takes a JSON body containing `refresh_token` and revokes
	// it.  No access token is required.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: the flight
// catalogue and the payment capture webhook.  Flight reads are cached in
// Redis; the webhook is authenticated by its HMAC signature rather than
// a session, so it carries no JWT middleware.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, pay *handler.PaymentHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e.GET("/v1/vuelos", p.ListFlights, cache)
	e.GET("/v1/vuelos/buscar", p.SearchFlights, cache)
	e.GET("/v1/vuelos/:id", p.GetFlight, cache)

	e.POST("/v1/pagos/webhook/:provider", pay.Webhook)
}
