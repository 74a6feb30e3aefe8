package db

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "secure_password"
)

type seedProduct struct {
	name        string
	description string
	price       float64
}

var seedProducts = []seedProduct{
	{"Laptop", "High-performance laptop", 999.99},
	{"Smartphone", "Latest model smartphone", 699.99},
	{"Headphones", "Noise-cancelling headphones", 199.99},
}

// Seed inserts the default admin and the sample products on a fresh
// database. Counts are checked first, so running it on every start never
// duplicates the seed data.
func Seed(database *sql.DB, logger zerolog.Logger) error {
	var userCount int
	if err := database.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		_, err = database.Exec(
			"INSERT INTO users (username, password_hash) VALUES ($1, $2)",
			seedAdminUsername, string(hash),
		)
		if err != nil {
			return fmt.Errorf("insert seed admin: %w", err)
		}
		logger.Info().Str("username", seedAdminUsername).Msg("Seeded default admin user")
	}

	var productCount int
	if err := database.QueryRow("SELECT COUNT(*) FROM products").Scan(&productCount); err != nil {
		return fmt.Errorf("count products: %w", err)
	}

	if productCount == 0 {
		for _, p := range seedProducts {
			_, err := database.Exec(
				"INSERT INTO products (name, description, price) VALUES ($1, $2, $3)",
				p.name, p.description, p.price,
			)
			if err != nil {
				return fmt.Errorf("insert seed product %q: %w", p.name, err)
			}
		}
		logger.Info().Int("count", len(seedProducts)).Msg("Seeded sample products")
	}

	return nil
}
