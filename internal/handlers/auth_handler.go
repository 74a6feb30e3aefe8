package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"product-catalog/internal/models"
	"product-catalog/internal/services"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	userService *services.UserService
	authService *services.AuthService
	logger      zerolog.Logger
}

func NewAuthHandler(userService *services.UserService, authService *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		logger:      logger,
	}
}

// Login verifies a username/password pair and returns an access token. The
// 401 body is identical for unknown users and wrong passwords.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}
		h.logger.Error().Err(err).Msg("Login failed")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		return
	}

	token, err := h.authService.GenerateToken(user.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("Token generation failed")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, models.LoginResponse{AccessToken: token})
}
