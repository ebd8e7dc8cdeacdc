package handlers

import (
	"errors"
	"net/http"

	"wheel-backtest/internal/api/models"
	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

func abortWithError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func badRequest(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
}

// writeError maps engine errors onto HTTP statuses.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	var verr *model.ValidationError
	var derr *model.DomainError
	switch {
	case errors.As(err, &verr):
		details := map[string]interface{}{"field": verr.Field}
		if verr.Row >= 0 {
			details["row"] = verr.Row
		}
		abortWithError(c, http.StatusBadRequest, "INVALID_SERIES", err.Error(), details)
	case errors.As(err, &derr):
		abortWithError(c, http.StatusUnprocessableEntity, "DOMAIN_ERROR", err.Error(), nil)
	default:
		_ = c.Error(err)
		log.ErrorContext(c.Request.Context(), "request failed", logger.ErrorField(err))
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
	}
}
