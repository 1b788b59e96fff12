package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"avolkov/resume-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resumeSaveBody struct {
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

// ResumeSave validates and inserts a new resume document. Every call
// inserts, saving under the same title twice yields two rows.
func (a *API) ResumeSave(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data resumeSaveBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.TitleValidator(data.Title); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	payload, err := validators.ResumeDataValidator(data.Data, viper.GetInt("resume.max_chars"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	res, err := a.Resumes.Save(userID, data.Title, payload)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save resume", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("Resume saved",
		zap.String("resumeID", res.ID),
		zap.String("userID", userID),
		zap.Int("chars", len(payload)),
		zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Resume saved",
		"resume":  res,
		"savedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
