package services

import (
	"database/sql"
	"errors"
	"fmt"

	"product-catalog/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown username and wrong password so
// responses cannot be used for username enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserService(db *sql.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

// Authenticate looks the user up by username and verifies the password
// against the stored bcrypt hash.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User

	err := s.db.QueryRow(
		"SELECT id, username, password_hash FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn().Str("username", username).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// CreateUser stores a new user with a bcrypt-hashed password. Only used by
// operational tooling and tests; there is no registration endpoint.
func (s *UserService) CreateUser(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var id int
	err = s.db.QueryRow(
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id",
		username, string(hash),
	).Scan(&id)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{ID: id, Username: username, PasswordHash: string(hash)}, nil
}
