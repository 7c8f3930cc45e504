package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/errs"
	"github.com/sitecms/internal/middleware"
	"github.com/sitecms/internal/service"
)

func respondError(c *gin.Context, err error) {
	middleware.Abort(c, translateError(err))
}

// translateError maps service sentinels onto HTTP errors. Unknown errors
// pass through and end up as a logged 500.
func translateError(err error) error {
	switch {
	case errors.Is(err, service.ErrBlogNotFound),
		errors.Is(err, service.ErrOfferingNotFound),
		errors.Is(err, service.ErrSolutionNotFound),
		errors.Is(err, service.ErrCaseStudyNotFound),
		errors.Is(err, service.ErrEnquiryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return errs.NewNotFoundError(capitalize(err.Error()))
	case errors.Is(err, service.ErrSlugTaken), errors.Is(err, service.ErrSlugInvalid):
		return errs.Field("slug", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return errs.Field("email", err.Error())
	case errors.Is(err, service.ErrBlogStatusInvalid), errors.Is(err, service.ErrEnquiryStatusInvalid):
		return errs.Field("status", err.Error())
	case errors.Is(err, service.ErrRoleInvalid):
		return errs.Field("role", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserInactive):
		return errs.NewUnauthorizedError(capitalize(err.Error()))
	case errors.Is(err, service.ErrCannotDeleteSelf):
		return errs.NewBadRequestError(capitalize(err.Error()))
	case errors.Is(err, service.ErrUploadNotImage), errors.Is(err, service.ErrUploadEmpty):
		return errs.Field("image", err.Error())
	case errors.Is(err, service.ErrUploadTooLarge):
		return errs.NewRequestTooLargeError(capitalize(err.Error()))
	}
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func bind(c *gin.Context, dst interface{}) bool {
	if err := middleware.Bind(c, dst); err != nil {
		middleware.Abort(c, err)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, bool) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		middleware.Abort(c, errs.NewBadRequestError("Invalid "+key))
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}

func queryUint(c *gin.Context, key string) uint {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}

// queryBool returns nil when the parameter is absent or not a boolean.
func queryBool(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func isAuthenticated(c *gin.Context) bool {
	_, ok := middleware.CurrentUser(c)
	return ok
}

// publishedFilter forces anonymous callers onto published records;
// signed-in callers may pass ?published= to choose.
func publishedFilter(c *gin.Context) *bool {
	if isAuthenticated(c) {
		return queryBool(c, "published")
	}
	published := true
	return &published
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
