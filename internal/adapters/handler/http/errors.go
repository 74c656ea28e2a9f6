package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// storageWarning is attached to successful responses whose change could
// not be persisted; the change is still held in memory.
const storageWarning = "changes saved in memory only: storage unavailable"

func handleError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitsAlreadyDefined),
		errors.Is(err, domain.ErrSetupRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrNoValidHabits):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrTooManyHabits),
		errors.Is(err, domain.ErrFlagCountMismatch),
		errors.Is(err, domain.ErrInvalidMonth):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrHabitIndexOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})

	default:
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
