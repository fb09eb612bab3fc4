package middleware

import (
	"errors"
	"net/http"
	"strings"

	"oneday/services/session"
	"oneday/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	SessionKey = "session"
	TokenKey   = "token"
)

// SessionLookup finds a live session by id.
type SessionLookup interface {
	Get(id string) (*session.Session, bool)
}

// bearerToken reads the Authorization header. Browsers cannot set headers on a
// websocket handshake, so upgrades may pass the token as ?token= instead.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		return c.Query("token")
	}
	return ""
}

func unauthorized(c *gin.Context, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
		Message: "Insufficient authorization",
		Details: details,
	})
}

// SessionAuth requires a bearer token that is validly signed, still present
// in the auth cache, and bound to a live session.
func SessionAuth(tokens utils.TokenCache, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		cached, err := tokens.Lookup(c.Request.Context(), token)
		if errors.Is(err, utils.ErrSessionNotCached) {
			unauthorized(c, "session expired")
			return
		}
		if err != nil {
			utils.GetLogger().Error("auth cache lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadGateway, utils.ErrorResponse{Message: "Authorization backend unavailable"})
			return
		}
		if cached.SessionID != claims.SessionID || cached.UserID != claims.Subject {
			unauthorized(c, "token mismatch")
			return
		}

		s, ok := sessions.Get(claims.SessionID)
		if !ok {
			unauthorized(c, "session ended")
			return
		}

		c.Set(SessionKey, s)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// CurrentSession returns the session attached by SessionAuth.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
