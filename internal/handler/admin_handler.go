package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/errs"
	"github.com/sitecms/internal/middleware"
	"github.com/sitecms/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// Login 校验邮箱与密码，签发 token 并写入会话
func (a *API) Login(c *gin.Context) {
	var payload loginRequest
	if !bind(c, &payload) {
		return
	}

	user, err := a.users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := a.tokens.Issue(user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	// 设置会话
	if _, ok := c.Get(sessions.DefaultKey); ok {
		session := sessions.Default(c)
		session.Set(middleware.SessionUserKey, user.ID)
		if err := session.Save(); err != nil {
			respondError(c, err)
			return
		}
	}

	a.setTokenCookie(c, token, int(time.Until(expiresAt).Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"user":      user,
	})
}

// Logout 清理会话与 token cookie
func (a *API) Logout(c *gin.Context) {
	if _, ok := c.Get(sessions.DefaultKey); ok {
		session := sessions.Default(c)
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := session.Save(); err != nil {
			middleware.Log(c).Warn().Err(err).Msg("clear session")
		}
	}

	a.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile 返回当前登录用户
func (a *API) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Abort(c, errs.NewUnauthorizedError("Authentication required"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile 允许用户修改自己的名称、邮箱与密码
func (a *API) UpdateProfile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Abort(c, errs.NewUnauthorizedError("Authentication required"))
		return
	}

	var payload profileRequest
	if !bind(c, &payload) {
		return
	}

	user, err := a.users.Update(current.ID, service.UserUpdate{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, value, maxAge, "/", "", a.cookieSecure, true)
}
