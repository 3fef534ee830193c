package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/aeroreserva/airline-reservation/internal/config"
	"github.com/aeroreserva/airline-reservation/internal/database"
	"github.com/aeroreserva/airline-reservation/internal/handler"
	"github.com/aeroreserva/airline-reservation/internal/payment"
	"github.com/aeroreserva/airline-reservation/internal/queue"
	"github.com/aeroreserva/airline-reservation/internal/repository"
	"github.com/aeroreserva/airline-reservation/internal/router"
)

func main() {
	// Load a local .env when present; in deployed environments the
	// variables come from the process environment and this is a no-op.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()

	// Repositories over the shared connection pool.
	flights := repository.NewFlightRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	payrollRepo := repository.NewPayrollRepo(db)
	reports := repository.NewReportRepo(db)

	providers := payment.NewRegistry(cfg.StripeSecret, cfg.PayPalSecret)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(flights)
	reservationH := handler.NewReservationHandler(flights, reservations)
	flightH := handler.NewFlightAdminHandler(flights)
	payrollH := handler.NewPayrollHandler(cfg.Payroll, users, payrollRepo)
	reportH := handler.NewReportHandler(reports)
	paymentH := handler.NewPaymentHandler(providers, reservations, flights)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, paymentH, rdb)
	router.RegisterCustomer(e, reservationH, paymentH, cfg.JWTSecret, rdb)
	router.RegisterAdmin(e, flightH, authH, payrollH, reportH, cfg.JWTSecret)

	// Receipt consumer runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartReceiptConsumer(); err != nil {
			log.Printf("receipt consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
