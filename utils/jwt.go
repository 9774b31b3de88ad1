package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"amedick/config"
	"amedick/models"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT for the principal that expires after duration.
func GenerateToken(p models.Principal, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   p.ID,
		"email": p.Email,
		"role":  string(p.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParsePrincipal validates the token and returns its principal and expiry.
func ParsePrincipal(tokenString string) (models.Principal, time.Time, error) {
	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return models.Principal{}, time.Time{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Principal{}, time.Time{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	p := models.Principal{ID: sub, Email: email, Role: models.Role(role)}
	if p.ID == "" || !p.Role.Valid() {
		return models.Principal{}, time.Time{}, ErrInvalidToken
	}

	var exp time.Time
	if v, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(v), 0)
	}
	return p, exp, nil
}
