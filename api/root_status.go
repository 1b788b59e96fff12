package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Status answers a health check with live table counts. The route is
// cached for a few seconds so pollers don't hammer the database.
func (a *API) Status(c *gin.Context) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "ERROR",
			"message": "Database connection failed",
		})

		zap.L().Error("Database ping failed", zap.Error(err))
		return
	}

	users, uErr := a.Users.CountAll()
	resumes, rErr := a.Resumes.CountAll()
	sessions, sErr := a.Sessions.CountAll()

	for _, err := range []error{uErr, rErr, sErr} {
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "ERROR",
				"message": "Failed to collect statistics",
			})

			zap.L().Error("Failed to collect statistics", zap.Error(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Server is running normally",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  "connected",
		"statistics": gin.H{
			"users":          users,
			"resumes":        resumes,
			"activeSessions": sessions,
		},
		"endpoints": gin.H{
			"register":      "POST /api/register",
			"login":         "POST /api/login",
			"logout":        "POST /api/logout",
			"resumes":       "GET/POST /api/resumes",
			"sessionStatus": "GET /api/session/status",
		},
	})
}
