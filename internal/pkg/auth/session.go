package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
)

// SessionConfig defines admin session token settings.
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// SessionService issues and validates the signed tokens carried in the admin
// session cookie. The cookie holds an HS256 JWT rather than a readable JSON
// payload, so the client cannot tamper with it.
type SessionService struct {
	config SessionConfig
}

// NewSessionService creates a new SessionService.
func NewSessionService(config SessionConfig) *SessionService {
	return &SessionService{config: config}
}

// SessionClaims defines the admin session token content.
type SessionClaims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Issue creates a session token for the given admin identity.
func (s *SessionService) Issue(username, name string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Username: username,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   username,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify validates a session token and returns its claims.
func (s *SessionService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.ErrSessionInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrSessionInvalid
	}
	return claims, nil
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.config.TTL
}
