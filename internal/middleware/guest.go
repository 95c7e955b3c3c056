package middleware

import (
	"quiz_backend/internal/model"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	guestCookieName   = "guest_session"
	guestHeaderName   = "X-Guest-Session"
	guestCookieMaxAge = 60 * 60 * 24 * 365
)

// GuestSessionMiddleware ensures every anonymous request carries a stable
// session id. An existing cookie or header wins; otherwise a fresh uuid is
// minted and set as a cookie so later requests from the same browser match.
func GuestSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(guestHeaderName)
		if sessionID == "" {
			if cookie, err := c.Cookie(guestCookieName); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" {
			sessionID = c.Query("guestSessionId")
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(guestCookieName, sessionID, guestCookieMaxAge, "/", "", false, true)
		}
		c.Set("guest_session", sessionID)
		c.Next()
	}
}

// PrincipalFromContext builds the caller identity for service calls. A valid
// JWT takes precedence over the guest session.
func PrincipalFromContext(c *gin.Context) model.Principal {
	if claims := util.GetUserFromContext(c); claims != nil {
		return model.UserPrincipal(claims.UserID)
	}
	if sessionID := c.GetString("guest_session"); sessionID != "" {
		return model.GuestPrincipal(sessionID)
	}
	return model.Principal{}
}
