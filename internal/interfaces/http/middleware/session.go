// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/smartshop-backend/internal/config"
)

// SessionKey is the gin context key holding the session id
const SessionKey = "session_id"

// Session assigns every visitor a cookie-backed session id. All cart,
// checkout, search and prize state is keyed by it.
func Session(cfg *config.Config) gin.HandlerFunc {
	maxAge := int(cfg.Session.TTL.Seconds())

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(cfg.Session.CookieName, sessionID, maxAge, "/", "", false, true)
		}

		c.Set(SessionKey, sessionID)
		c.Next()
	}
}

// SessionID returns the request's session id
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
