package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptorec/internal/domain/dto"
)

// ErrorHandler renders errors attached with c.Error when the handler did
// not write a response itself. Such errors become a 500 ErrorResponse.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", c.Errors.Last().Err))
}

// AbortWithError stops the chain and writes a standardized error body.
// err is also attached to the context so RequestLogger can report it.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
