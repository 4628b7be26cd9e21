package main

import (
	"database/sql"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/booking"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/config"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/database"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/handler"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/middleware"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/queue"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/repository"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db := openDB(cfg)
	defer func() { _ = db.Close() }()

	// Repositories over the shared connection pool.
	rooms := repository.NewRoomRepo(db)
	seasons := repository.NewSeasonRepo(db)
	reservations := repository.NewReservationRepo(db)
	payments := repository.NewPaymentRepo(db)
	users := repository.NewUserRepo(db)

	// Domain events go out over RabbitMQ; the consumer tails the queue
	// into logs/booking.log.
	events := queue.NewPublisher()
	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	roomSvc := booking.NewRoomService(rooms, events)
	seasonSvc := booking.NewSeasonService(seasons, events)
	priceSvc := booking.NewPriceService(rooms, seasons, events)
	reservationSvc := booking.NewReservationService(reservations, rooms, payments, events)
	paymentSvc := booking.NewPaymentService(payments, reservations, events)

	e := echo.New()

	// Distributed rate limiting; degrades to a pass-through when Redis
	// is unreachable.
	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	if rdb == nil && rlCfg.Enabled {
		log.Printf("redis unreachable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Rooms:        handler.NewRoomHandler(roomSvc),
		Seasons:      handler.NewSeasonHandler(seasonSvc),
		Pricing:      handler.NewPricingHandler(priceSvc),
		Reservations: handler.NewReservationHandler(reservationSvc),
		Payments:     handler.NewPaymentHandler(paymentSvc),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// openDB connects to the configured database driver and exits on
// failure; there is nothing useful to do without storage.
func openDB(cfg config.Config) *sql.DB {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		return db
	default:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open mysql: %v", err)
		}
		return db
	}
}
