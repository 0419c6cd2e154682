package middleware

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Authenticate requires a valid bearer token and stores its session on the context
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireAdmin rejects sessions that are not the administrator
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Session(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}

// Session returns the session stored by Authenticate, or the zero session
func Session(c *gin.Context) auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(auth.Session); ok {
			return s
		}
	}
	return auth.Session{}
}
