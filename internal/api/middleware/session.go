package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jafarshop/storefront/internal/catalog"
	"github.com/jafarshop/storefront/internal/session"
)

const (
	SessionCookieName = "storefront_session"
	viewContextKey    = "catalog_view"
	sessionContextKey = "session_id"
)

// SessionMiddleware attaches the caller's catalog view, creating a session
// and setting its cookie when the request carries none or an unknown one
func SessionMiddleware(sessions *session.Registry, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(SessionCookieName)
		id, view, created := sessions.GetOrCreate(cookie)
		if created {
			maxAge := 0
			if ttl > 0 {
				maxAge = int(ttl.Seconds())
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, id, maxAge, "/", "", false, true)
			SetActiveSessions(sessions.Len())
		}

		c.Set(sessionContextKey, id)
		c.Set(viewContextKey, view)
		c.Next()
	}
}

// GetViewFromContext retrieves the caller's catalog view
func GetViewFromContext(c *gin.Context) (*catalog.View, bool) {
	v, exists := c.Get(viewContextKey)
	if !exists {
		return nil, false
	}
	view, ok := v.(*catalog.View)
	return view, ok
}

// GetSessionIDFromContext retrieves the caller's session id
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
