package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ariebrainware/clinic-records/util"
)

// EndpointCallLogger logs each HTTP request once it has been served.
// Server errors are logged at error level, client errors at warn.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("raw_path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Int64("duration_ms", duration.Milliseconds()),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		l := util.Log()
		switch {
		case status >= 500:
			l.Error("endpoint call", fields...)
		case status >= 400:
			l.Warn("endpoint call", fields...)
		default:
			l.Info("endpoint call", fields...)
		}
	}
}
