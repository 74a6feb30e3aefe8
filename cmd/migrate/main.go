package main

import (
	"os"

	"product-catalog/internal/config"
	"product-catalog/internal/db"
	"product-catalog/internal/logger"
)

// One-shot migration: adds products.image_url to deployments created before
// image support. Exit code 0 on success (including the already-migrated
// case), 1 on failure.
func main() {
	cfg := config.LoadConfig()
	log := logger.InitLogger()

	database, err := db.InitDB(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		log.Error().Err(err).Msg("Database connection failed")
		os.Exit(1)
	}
	defer database.Close()

	added, err := db.EnsureProductImageColumn(database, cfg.DBDriver)
	if err != nil {
		log.Error().Err(err).Msg("Migration failed")
		os.Exit(1)
	}

	if added {
		log.Info().Msg("Added image_url column to products table")
	} else {
		log.Info().Msg("Column image_url already exists, nothing to do")
	}
	log.Info().Msg("Database migration completed successfully")
}
