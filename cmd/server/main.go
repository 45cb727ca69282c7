package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/truck-garage-allocation/internal/allocation"
	"github.com/iliyamo/truck-garage-allocation/internal/config"
	"github.com/iliyamo/truck-garage-allocation/internal/database"
	"github.com/iliyamo/truck-garage-allocation/internal/handler"
	"github.com/iliyamo/truck-garage-allocation/internal/queue"
	"github.com/iliyamo/truck-garage-allocation/internal/repository"
	"github.com/iliyamo/truck-garage-allocation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// The geometry is built once and treated as immutable for the lifetime
	// of the process.
	geo := allocation.DefaultGeometry(allocation.Params{
		MinTruckLength: cfg.MinTruckLength,
		CabinThreshold: cfg.CabinThreshold,
		CabinLength:    cfg.CabinLength,
		MinSpacing:     cfg.MinSpacing,
		EndMargin:      cfg.EndMargin,
	})
	for gi := range geo.Garages {
		if l, ok := cfg.LaneLengths[geo.Garages[gi].Code]; ok {
			for li := range geo.Garages[gi].Lanes {
				geo.Garages[gi].Lanes[li].Length = l
			}
		}
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}

	trucks := repository.NewTruckRepo(db)
	changelog := repository.NewChangelogRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAllocation(e,
		handler.NewAvailabilityHandler(trucks, geo),
		handler.NewAssignmentHandler(trucks, changelog, geo),
		handler.NewTruckHandler(trucks, geo),
		cfg, rdb)

	// Background consumer appends committed assignment events to
	// logs/allocation.log; it reconnects on broker failures.
	go func() {
		if err := queue.StartAllocationConsumer(); err != nil {
			log.Printf("allocation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
