package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// TokenLifetime bounds how long an issued access token stays valid.
const TokenLifetime = time.Hour

var ErrInvalidToken = errors.New("invalid token")

type AuthService struct {
	secretKey []byte
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(secretKey []byte, logger zerolog.Logger) *AuthService {
	return &AuthService{
		secretKey: secretKey,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateToken issues a signed token for the given username, expiring one
// hour after issuance.
func (s *AuthService) GenerateToken(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error generating token")
		return "", err
	}

	return tokenString, nil
}

// ValidateToken checks signature and expiry and returns the token subject.
// Any failure collapses into ErrInvalidToken; callers never learn why a
// token was rejected.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
