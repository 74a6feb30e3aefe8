package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/db"
	"product-catalog/internal/logger"
	"product-catalog/internal/router"
	"product-catalog/internal/tlsutil"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Str("env", cfg.Env).Msg("Starting product catalog")

	if cfg.GeneratedSecret {
		log.Warn().Msg("JWT_SECRET not set, using a generated key; issued tokens will not survive a restart")
	}

	database, err := db.InitDB(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.DBDriver); err != nil {
		log.Fatal().Err(err).Msg("Migrations failed")
	}
	if err := db.Seed(database, log); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	r := router.SetupRouter(database, cfg, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	certFile, keyFile := cfg.CertFile, cfg.KeyFile
	if cfg.Env == "production" {
		if !fileExists(certFile) || !fileExists(keyFile) {
			log.Warn().Msg("Production certificates not found, falling back to a self-signed certificate")
			certFile, keyFile = "", ""
		}
	} else {
		certFile, keyFile = "", ""
	}

	if certFile == "" {
		cert, err := tlsutil.SelfSignedCertificate()
		if err != nil {
			log.Fatal().Err(err).Msg("Self-signed certificate generation failed")
		}
		server.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening with TLS")
		if err := server.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
