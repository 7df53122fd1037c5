package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptorec/internal/domain/dto"
	"github.com/guttosm/cryptorec/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics,
// logs the stack trace with the request id, and answers 500 with a
// standardized ErrorResponse. When the handler already started writing,
// the connection is only aborted.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get(RequestIDKey)
			logger.L().Error().
				Str("request_id", toString(rid)).
				Str("path", c.Request.URL.Path).
				Str("panic", fmt.Sprintf("%v", r)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)))
		}()

		c.Next()
	}
}
