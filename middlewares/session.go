package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookie = "cafe_session"

var sessionMaxAge = int((30 * 24 * time.Hour).Seconds())

// SessionMiddleware gives every browser a stable session id cookie. The cart
// blob is keyed by this id, so it must exist before any cart read/write.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set("sessionId", sid)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	if v, ok := c.Get("sessionId"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
