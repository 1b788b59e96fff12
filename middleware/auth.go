package middleware

import (
	"errors"
	"net/http"
	"strings"

	"avolkov/resume-api/security"
	"avolkov/resume-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware guards protected endpoints. It runs two sequential
// checks on the bearer token: the stateless signature/expiry check and
// the stateful session lookup. The session row is the source of truth,
// a correctly signed token is still rejected once logout removed its
// row.
func NewAuthMiddleware(sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")

		var tokenStr string
		if strings.HasPrefix(header, bearerPrefix) {
			tokenStr = header[len(bearerPrefix):]
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing authentication token",
				"requestID": requestID,
			})
			return
		}

		claims, err := security.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Invalid or expired token",
				"requestID": requestID,
			})

			zap.L().Debug("Token verification failed", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		sess, err := sessions.FindActive(claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNoActiveSession) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":     "Session expired. Please log in again.",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up session", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !security.DigestEqual(security.TokenDigest(tokenStr), sess.TokenHash) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Invalid session",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}
