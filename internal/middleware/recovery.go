package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"voice-ordering-kiosk/pkg/response"
)

// Recovery turns a handler panic into a 500 and logs the stack.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "%s: panic: %v\n%s", LogPrefixRecovery, r, debug.Stack())
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.InternalError(c, fmt.Errorf("panic: %v", r))
				c.Abort()
			}
		}()
		c.Next()
	}
}
