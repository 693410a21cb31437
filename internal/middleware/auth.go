package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/response"
)

// ContextUserIDKey is the gin context key holding the authenticated user ID
const ContextUserIDKey = "user_id"

// Auth returns a middleware that authenticates requests. The session cookie
// is checked first; a Bearer token is accepted as a fallback for API
// clients that cannot hold cookies.
func Auth(codec *auth.SessionCodec, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, err := codec.Read(c.Request); err == nil {
			c.Set(ContextUserIDKey, session.ID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		userID, err := auth.ParseToken(jwtSecret, parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user ID stored by Auth. The second
// return value is false when the request never passed the middleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}
