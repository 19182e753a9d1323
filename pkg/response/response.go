package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sevasetu/volunteerhub/pkg/apperror"
)

// GetCallerID retrieves the authenticated volunteer ID from the context
func GetCallerID(c *gin.Context) (uuid.UUID, error) {
	callerIDStr, exists := c.Get("volunteer_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	callerID, err := uuid.Parse(callerIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return callerID, nil
}

// Error writes a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		zap.L().Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
