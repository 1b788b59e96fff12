package api

import (
	"errors"
	"net/http"
	"time"

	"avolkov/resume-api/security"
	"avolkov/resume-api/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and opens a session. When the user already
// holds an active session the call answers 200 with a warning instead
// of minting a second token, repeat logins only create a new session
// after the old one lapsed.
func (a *API) Login(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	user, err := a.Users.Verify(data.Email, data.Password)
	if err != nil {
		// One message for unknown email and wrong password alike
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid email or password",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify credentials", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	active, err := a.Sessions.FindActive(user.ID)
	if err == nil {
		age := int(time.Since(active.CreatedAt).Minutes())

		zap.L().Warn("Login with an active session",
			zap.String("userID", user.ID),
			zap.Int("age_minutes", age),
			zap.String("requestID", requestID))

		c.JSON(http.StatusOK, gin.H{
			"message": "You already have an active session",
			"warning": "You are already logged in from another device or tab",
			"session": gin.H{
				"created":    active.CreatedAt,
				"expires":    active.ExpiresAt,
				"ageMinutes": age,
			},
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"name":  user.Name,
			},
		})
		return
	}

	if !errors.Is(err, store.ErrNoActiveSession) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Opportunistic cleanup, the reaper covers this between logins
	if _, err := a.Sessions.PurgeExpired(); err != nil {
		zap.L().Error("Failed to purge expired sessions", zap.Error(err), zap.String("requestID", requestID))
	}

	ttl := viper.GetDuration("session.ttl")

	token, err := security.MakeToken(user.ID, user.Email, ttl)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to sign token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	sess, err := a.Sessions.Create(user.ID, token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("User logged in", zap.String("userID", user.ID), zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
		"session": gin.H{
			"expiresAt": sess.ExpiresAt,
			"duration":  ttl.String(),
		},
	})
}
