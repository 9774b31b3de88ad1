package utils

import (
	"amedick/config"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes with BCRYPT_COST, falling back to bcrypt's default.
func HashPassword(password string) (string, error) {
	cost := config.AppConfig.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
