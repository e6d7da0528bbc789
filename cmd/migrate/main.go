// This file is used to create or update the database schema
// How to run:
// go run cmd/migrate/main.go                    # Use database.url from config / env
// go run cmd/migrate/main.go -db postgres://... # Use an explicit database URL
package main

import (
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/devboard-esn/devboard/internal/config"
	"github.com/devboard-esn/devboard/internal/db"
	"github.com/devboard-esn/devboard/internal/logger"
)

func main() {
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	var (
		dbURLFlag  = flag.String("db", "", "Database URL (optional, defaults to database.url)")
		configPath = flag.String("config", "", "Path to a YAML configuration file")
		retries    = flag.Int("retries", 5, "Number of connection retries")
		retryWait  = flag.Duration("retry-wait", 3*time.Second, "Wait time between retries")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitializeAndConfigure(cfg.Log.Level)

	dbURL := cfg.Database.URL
	if *dbURLFlag != "" {
		dbURL = *dbURLFlag
	}

	// db.New migrates the schema once connected
	for attempt := 1; ; attempt++ {
		database, err := db.New(db.Options{URL: dbURL})
		if err == nil {
			_ = db.Close(database)
			logger.Info("Migrations completed successfully")
			return
		}
		if attempt >= *retries {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Warnf("Database not ready (attempt %d/%d): %v", attempt, *retries, err)
		time.Sleep(*retryWait)
	}
}
