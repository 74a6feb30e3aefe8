package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ColumnExists reports whether the column is already present on the table.
// Postgres answers via information_schema, sqlite via pragma_table_info.
func ColumnExists(database *sql.DB, driver, table, column string) (bool, error) {
	var query string
	switch driver {
	case "sqlite3":
		query = "SELECT 1 FROM pragma_table_info($1) WHERE name = $2"
	default:
		query = "SELECT 1 FROM information_schema.columns WHERE table_name = $1 AND column_name = $2"
	}

	var one int
	err := database.QueryRow(query, table, column).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check column %s.%s: %w", table, column, err)
	}
	return true, nil
}

// EnsureProductImageColumn adds products.image_url with its default when an
// existing deployment predates image support. Returns whether the column was
// added; running it again is a no-op.
func EnsureProductImageColumn(database *sql.DB, driver string) (bool, error) {
	exists, err := ColumnExists(database, driver, "products", "image_url")
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	var ddl string
	switch driver {
	case "sqlite3":
		ddl = "ALTER TABLE products ADD COLUMN image_url TEXT DEFAULT 'default-product.jpg'"
	default:
		ddl = "ALTER TABLE products ADD COLUMN image_url VARCHAR(255) DEFAULT 'default-product.jpg'"
	}

	if _, err := database.Exec(ddl); err != nil {
		return false, fmt.Errorf("add image_url column: %w", err)
	}
	return true, nil
}
