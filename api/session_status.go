package api

import (
	"errors"
	"net/http"
	"time"

	"avolkov/resume-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionStatus reports on the caller's newest session. The guard has
// already established that an active one exists, the extra lookup here
// fetches its timestamps.
func (a *API) SessionStatus(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	sess, err := a.Sessions.Latest(userID)
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Session not found",
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

	timeLeft := int(time.Until(sess.ExpiresAt).Minutes())

	c.JSON(http.StatusOK, gin.H{
		"isActive": true,
		"user": gin.H{
			"id":    userID,
			"email": c.GetString("userEmail"),
		},
		"session": gin.H{
			"created":         sess.CreatedAt,
			"expires":         sess.ExpiresAt,
			"timeLeftMinutes": max(0, timeLeft),
			"expiresSoon":     timeLeft < 60,
		},
	})
}
