package middleware

import (
	"fmt"
	"net/http"

	"wheel-backtest/internal/api/models"
	"wheel-backtest/internal/logger"

	"github.com/gin-gonic/gin"
)

const panicMessage = "An unexpected error occurred"

// ErrorHandler recovers from panics and answers with an INTERNAL_ERROR body.
// A string panic value is passed through as the message.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.ErrorContext(c.Request.Context(), "panic recovered",
			logger.StringField("panic", fmt.Sprint(recovered)))

		msg := panicMessage
		if s, ok := recovered.(string); ok {
			msg = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: msg},
		})
	})
}
