package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/auth"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/errs"
)

const (
	// TokenCookie carries the bearer token for browser clients.
	TokenCookie = "token"
	// SessionUserKey is the session value holding the signed-in user id.
	SessionUserKey = "user_id"

	currentUserKey = "current_user"
)

// UserLookup resolves an active account by id.
type UserLookup interface {
	FindActive(id uint) (*db.User, error)
}

// Authenticate resolves the current user from the bearer header, the token
// cookie or the session, in that order. It never rejects a request; guards
// decide what anonymous callers may do.
func Authenticate(tokens *auth.TokenManager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolveUser(c, tokens, users); user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, tokens *auth.TokenManager, users UserLookup) *db.User {
	for _, raw := range []string{bearerToken(c), cookieToken(c)} {
		if raw == "" {
			continue
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			Log(c).Debug().Err(err).Msg("ignoring invalid token")
			continue
		}
		if user, err := users.FindActive(claims.UserID); err == nil {
			return user
		}
	}

	// 只有在挂载了 sessions 中间件时才读取会话
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	id, ok := sessions.Default(c).Get(SessionUserKey).(uint)
	if !ok || id == 0 {
		return nil
	}
	user, err := users.FindActive(id)
	if err != nil {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func cookieToken(c *gin.Context) string {
	value, err := c.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// CurrentUser returns the user resolved by Authenticate.
func CurrentUser(c *gin.Context) (*db.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*db.User)
	return user, ok && user != nil
}

// RequireAuth rejects anonymous callers with 401.
func RequireAuth(c *gin.Context) error {
	if _, ok := CurrentUser(c); !ok {
		return errs.NewUnauthorizedError("Authentication required")
	}
	return nil
}

// RequireRole rejects callers whose role is not listed with 403.
func RequireRole(roles ...string) Guard {
	return func(c *gin.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return errs.NewUnauthorizedError("Authentication required")
		}
		for _, role := range roles {
			if user.Role == role {
				return nil
			}
		}
		return errs.NewForbiddenError("You do not have permission to perform this action")
	}
}
