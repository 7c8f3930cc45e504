package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/errs"
)

// Abort writes err as the JSON error body and stops the handler chain.
// Errors that are not *errs.HTTPError are logged and reported as 500.
func Abort(c *gin.Context, err error) {
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		_ = c.Error(err)
		Log(c).Error().Err(err).Msg("unhandled error")
		httpErr = errs.NewInternalServerError()
	}
	c.AbortWithStatusJSON(httpErr.Status, httpErr)
}
