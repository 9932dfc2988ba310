package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

// AdminSubject is the subject carried by admin tokens
const AdminSubject = "admin"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("sub claim is missing")
)

// GenerateToken signs an HS256 token for subject that expires after ttl
func GenerateToken(subject, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub": subject,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies the signature and expiry and returns the subject
func ValidateToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrMissingSubject
	}
	return subject, nil
}

// AuthenticateAdmin validates a presented admin token. Every failure,
// including an empty token, is an *errors.ErrUnauthorized.
func AuthenticateAdmin(tokenString, secret string) (string, error) {
	if tokenString == "" {
		return "", &apperrors.ErrUnauthorized{Message: "missing admin token"}
	}
	subject, err := ValidateToken(tokenString, secret)
	if err != nil {
		return "", &apperrors.ErrUnauthorized{Message: "invalid token", Cause: err}
	}
	return subject, nil
}
