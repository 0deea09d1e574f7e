package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgLog "voice-ordering-kiosk/pkg/log"
)

// RequestLogger tags the request context with a request id and logs one line per request.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(pkgLog.WithRequestID(c.Request.Context(), id))

		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			m.l.Error(ctx, append([]any{"request failed"}, fields...)...)
		case status >= 400:
			m.l.Warn(ctx, append([]any{"request rejected"}, fields...)...)
		default:
			m.l.Debug(ctx, append([]any{"request served"}, fields...)...)
		}
	}
}
