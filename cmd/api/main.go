package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"linmod/adapters/postgres"
	"linmod/adapters/rng"
	"linmod/adapters/stats/engine"
	"linmod/app"
	"linmod/internal/api"
	"linmod/internal/config"
	"linmod/internal/testkit"
	"linmod/ports"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var ledger ports.RunLedgerPort
	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		repo := postgres.NewRunRepository(db)
		if err := repo.Migrate(context.Background()); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		ledger = repo
	} else {
		// No DATABASE_URL: keep runs in memory so the API still works locally.
		ledger = testkit.NewInMemoryRunLedger()
	}

	gin.SetMode(cfg.Server.GinMode)

	simulator := engine.NewSimulator()
	simService := app.NewSimulationService(simulator, ledger)
	sweepSvc := app.NewSweepService(simulator, rng.NewAdapter(), cfg.Sweep.Concurrency)

	server := api.NewServer(simService, sweepSvc, ledger)
	if err := server.Run(":" + cfg.Server.APIPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
