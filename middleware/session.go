package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionIDKey    = "session_id"
	SessionIDHeader = "X-Session-ID"
)

// Session gives every request a session handle. It reads the cookie, then the
// header, and otherwise issues a new id as an HttpOnly cookie.
func Session(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			sessionID = c.GetHeader(SessionIDHeader)
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sessionID, int(ttl.Seconds()), "/", "", c.Request.TLS != nil, true)
		}
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
