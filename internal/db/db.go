package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// InitDB opens a connection for the configured driver ("postgres" for
// deployments, "sqlite3" for local development and tests) and verifies it
// with a ping.
func InitDB(driver, dbURL string) (*sql.DB, error) {
	database, err := sql.Open(driver, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return database, nil
}

// RunMigrations creates the schema when it does not exist yet. Safe to run
// on every start.
func RunMigrations(database *sql.DB, driver string) error {
	var queries []string

	switch driver {
	case "sqlite3":
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS products (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				description TEXT DEFAULT '',
				price REAL NOT NULL,
				image_url TEXT DEFAULT 'default-product.jpg'
			);`,
		}
	default:
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(80) UNIQUE NOT NULL,
				password_hash VARCHAR(120) NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS products (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT DEFAULT '',
				price DOUBLE PRECISION NOT NULL,
				image_url VARCHAR(255) DEFAULT 'default-product.jpg'
			);`,
		}
	}

	for _, q := range queries {
		if _, err := database.Exec(q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
