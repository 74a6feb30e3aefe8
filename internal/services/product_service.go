package services

import (
	"database/sql"
	"fmt"

	"product-catalog/internal/models"

	"github.com/rs/zerolog"
)

type ProductService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewProductService(db *sql.DB, logger zerolog.Logger) *ProductService {
	return &ProductService{
		db:     db,
		logger: logger,
	}
}

func (s *ProductService) GetProducts() ([]models.Product, error) {
	rows, err := s.db.Query(
		`SELECT id, name, COALESCE(description, ''), price,
			COALESCE(image_url, $1)
		FROM products ORDER BY id`,
		models.DefaultProductImage,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying products")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageRef); err != nil {
			s.logger.Error().Err(err).Msg("Error scanning product row")
			return nil, fmt.Errorf("database error: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return products, nil
}

// CreateProduct persists a new product and returns its generated id.
func (s *ProductService) CreateProduct(name, description string, price float64, imageRef string) (int, error) {
	if imageRef == "" {
		imageRef = models.DefaultProductImage
	}

	var id int
	err := s.db.QueryRow(
		"INSERT INTO products (name, description, price, image_url) VALUES ($1, $2, $3, $4) RETURNING id",
		name, description, price, imageRef,
	).Scan(&id)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("Error creating product")
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int("product_id", id).Str("name", name).Msg("Product created")
	return id, nil
}
