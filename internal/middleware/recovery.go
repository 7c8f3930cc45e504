package middleware

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/errs"
)

// Recovery turns panics into a JSON 500 and logs the recovered value.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		Log(c).Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		err := errs.NewInternalServerError()
		c.AbortWithStatusJSON(err.Status, err)
	})
}
