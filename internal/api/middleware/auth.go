package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/auth"
	"github.com/jafarshop/storefront/pkg/errors"
)

const (
	AdminContextKey = "admin_subject"
	// AdminCookieName holds the token set by the auth callback
	AdminCookieName = "admin_token"
)

// AdminAuthMiddleware authenticates admin requests with a JWT taken from the
// Authorization header or, failing that, the admin_token cookie
func AdminAuthMiddleware(jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortUnauthorized(c, &errors.ErrUnauthorized{Message: "invalid authorization header format"})
				return
			}
			token = strings.TrimSpace(parts[1])
		} else if cookie, err := c.Cookie(AdminCookieName); err == nil {
			token = cookie
		}

		subject, err := auth.AuthenticateAdmin(token, jwtSecret)
		if err != nil {
			if e, ok := err.(*errors.ErrUnauthorized); ok && e.Cause != nil {
				logger.Warn("Failed to authenticate admin", zap.Error(e.Cause))
			}
			abortUnauthorized(c, err)
			return
		}

		c.Set(AdminContextKey, subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	message := "unauthorized"
	if e, ok := err.(*errors.ErrUnauthorized); ok {
		message = e.Error()
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// GetAdminFromContext retrieves the authenticated admin subject
func GetAdminFromContext(c *gin.Context) (string, bool) {
	subject, exists := c.Get(AdminContextKey)
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok
}
