// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/coffee-storefront/internal/config"
)

const (
	SessionIDKey    = "session_id"
	SessionCookie   = "session_id"
	SessionIDHeader = "X-Session-ID"
)

// Session identifies the storefront session from the session_id cookie or
// the X-Session-ID header, creating one when neither carries a valid id.
func Session(cfg *config.Config) gin.HandlerFunc {
	maxAge := int(cfg.Storage.SessionTTL.Seconds())

	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			sessionID, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.New().String()
		}

		c.SetCookie(SessionCookie, sessionID, maxAge, "/", "", cfg.IsProduction(), true)
		c.Header(SessionIDHeader, sessionID)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
