// README: Session middleware; issues and resolves the chat session ID.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"travelchat/internal/types"
)

const (
	SessionCookie = "travelchat_session"
	// SessionHeader lets API clients without cookie support carry their session.
	SessionHeader = "X-Session-ID"

	sessionKey = "session_id"
)

// Session resolves the caller's session from the header or cookie, issuing a
// new one when neither carries a valid ID. The ID is echoed in SessionHeader.
func Session(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if !validSessionID(id) {
			id, _ = c.Cookie(SessionCookie)
		}
		if !validSessionID(id) {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", secureCookie, true)
		c.Header(SessionHeader, id)
		c.Set(sessionKey, types.ID(id))
		c.Next()
	}
}

// SessionID returns the ID set by Session, or "" outside of it.
func SessionID(c *gin.Context) types.ID {
	v, ok := c.Get(sessionKey)
	if !ok {
		return ""
	}
	id, _ := v.(types.ID)
	return id
}

func validSessionID(v string) bool {
	if len(v) != 36 {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}
