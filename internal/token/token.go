// Package token issues and verifies the signed JWTs used for API
// authentication. Tokens are HS256-signed and carry the user's id, role,
// and whether two-factor verification has been completed.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"threadbox/internal/models"
)

// Claims are the custom JWT claims carried by every issued token.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	// TwoFADone is false for admins with TOTP enrolled until they verify a
	// code; admin routes require it to be true.
	TwoFADone bool `json:"twoFaDone"`
	jwt.RegisteredClaims
}

// UserUUID parses the UserID claim. Returns uuid.Nil on malformed ids.
func (c *Claims) UserUUID() uuid.UUID {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// IsAdmin reports whether the token belongs to an admin account.
func (c *Claims) IsAdmin() bool {
	return c.Role == string(models.RoleAdmin)
}

// Service signs and verifies tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService creates a token service with the given signing secret and
// token lifetime.
func NewService(secret string, expiry time.Duration) *Service {
	return &Service{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed token for the user. twoFADone records whether the
// second factor has been presented for this session.
func (s *Service) Issue(user *models.User, twoFADone bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID.String(),
		Role:      string(user.Role),
		TwoFADone: twoFADone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    "threadbox",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token verify: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("token verify: invalid token")
	}

	return claims, nil
}
