package middleware

import (
	"time"

	"wheel-backtest/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request and puts a request-scoped logger in the
// request context.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With(
			logger.StringField("method", c.Request.Method),
			logger.StringField("path", c.Request.URL.Path),
		)
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), reqLog))

		c.Next()

		status := c.Writer.Status()
		latency := logger.StringField("latency", time.Since(start).String())
		switch {
		case status >= 500:
			reqLog.Error("request", logger.IntField("status", status), latency, logger.StringField("errors", c.Errors.String()))
		case status >= 400:
			reqLog.Warn("request", logger.IntField("status", status), latency)
		default:
			reqLog.Info("request", logger.IntField("status", status), latency)
		}
	}
}
