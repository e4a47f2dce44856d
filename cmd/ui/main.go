package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"linmod/adapters/excel"
	"linmod/adapters/microarray"
	"linmod/adapters/postgres"
	"linmod/adapters/render"
	"linmod/domain/expression"
	"linmod/internal/config"
	"linmod/internal/testkit"
	"linmod/ports"
	"linmod/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var reader ports.RunLedgerReaderPort
	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		reader = postgres.NewRunRepository(db)
	} else {
		reader = testkit.NewInMemoryRunLedger()
	}

	var matrix *expression.Matrix
	if cfg.Data.ExpressionFile != "" {
		raw, err := excel.NewDataReaderForSheet(cfg.Data.Sheet).
			LoadMatrix(context.Background(), cfg.Data.ExpressionFile)
		if err != nil {
			log.Fatalf("expression data: %v", err)
		}
		matrix, err = microarray.Preprocess(raw, microarray.DefaultOptions())
		if err != nil {
			log.Fatalf("preprocess: %v", err)
		}
	}

	reportApp, err := ui.NewApp(reader, render.NewSVGRenderer(), matrix)
	if err != nil {
		log.Fatalf("ui: %v", err)
	}

	if err := reportApp.Serve(":" + cfg.Server.UIPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
