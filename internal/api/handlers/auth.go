package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/auth"
	"github.com/jafarshop/storefront/internal/config"
)

// TokenRequest is the body of POST /auth/token
type TokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// HandleIssueToken handles POST /auth/token
func HandleIssueToken(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := auth.CheckAPIKey(cfg.Admin.APIKeyHash, strings.TrimSpace(req.APIKey)); err != nil {
			logger.Warn("Rejected admin API key", zap.String("client_ip", c.ClientIP()))
			writeServiceError(c, err, logger, "issue_token")
			return
		}

		token, expiresAt, err := auth.GenerateToken(auth.AdminSubject, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
		if err != nil {
			logger.Error("Failed to sign admin token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"expires_at": expiresAt.UTC().Format(time.RFC3339),
		})
	}
}

// HandleAuthCallback handles GET /auth/callback. It always lands on the
// storefront root; a valid token is kept in the admin cookie on the way.
func HandleAuthCallback(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			logger.Debug("Auth callback without token")
		} else if _, err := auth.AuthenticateAdmin(token, cfg.Admin.JWTSecret); err != nil {
			logger.Warn("Auth callback with invalid token", zap.Error(err))
		} else {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(middleware.AdminCookieName, token, int(cfg.Admin.TokenTTL.Seconds()), "/", "", cfg.Environment == "production", true)
		}
		c.Redirect(http.StatusFound, "/")
	}
}
