package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/pkg/errors"
)

// HashAPIKey returns the bcrypt hash stored in ADMIN_API_KEY_HASH
func HashAPIKey(apiKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey compares a presented key against its bcrypt hash.
// An empty hash never verifies.
func VerifyAPIKey(hash, apiKey string) bool {
	if hash == "" || apiKey == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey)) == nil
}

// CheckAPIKey is VerifyAPIKey for callers that answer with an error
func CheckAPIKey(hash, apiKey string) error {
	if !VerifyAPIKey(hash, apiKey) {
		return &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	return nil
}
