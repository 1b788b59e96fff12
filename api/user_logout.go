package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logout deletes every session row of the caller. All tokens issued to
// the user stop working at once, even ones whose embedded expiry still
// lies in the future.
func (a *API) Logout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if _, err := a.Sessions.DeleteAll(userID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete sessions", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("User logged out", zap.String("userID", userID), zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{
		"message":     "Logged out successfully. All sessions removed.",
		"loggedOutAt": time.Now().UTC().Format(time.RFC3339),
	})
}
