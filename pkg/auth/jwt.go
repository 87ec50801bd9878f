package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims of a dashboard session.
type Claims struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Sites  []string `json:"sites,omitempty"`
	jwt.RegisteredClaims
}

// Identity is what a token carries about its user.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
	Sites  []string
}

// GenerateToken creates a signed HS256 JWT for the given identity and
// returns it with its expiry time.
func GenerateToken(secret, issuer string, id Identity, expiryHours int) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(time.Duration(expiryHours) * time.Hour)

	claims := Claims{
		UserID: id.UserID,
		Name:   id.Name,
		Email:  id.Email,
		Role:   id.Role,
		Sites:  id.Sites,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// Identity returns the user carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID: c.UserID,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
		Sites:  c.Sites,
	}
}
