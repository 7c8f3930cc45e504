package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/service"
)

type settingsRequest struct {
	SiteName     *string `json:"siteName" binding:"omitempty,max=100"`
	Tagline      *string `json:"tagline" binding:"omitempty,max=200"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone *string `json:"contactPhone" binding:"omitempty,max=30"`
	Address      *string `json:"address" binding:"omitempty,max=300"`
	LinkedInURL  *string `json:"linkedinUrl" binding:"omitempty,url"`
	TwitterURL   *string `json:"twitterUrl" binding:"omitempty,url"`
	GitHubURL    *string `json:"githubUrl" binding:"omitempty,url"`
}

// GetSettings 返回站点设置
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings 保存站点设置，未提交的字段保持不变
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsRequest
	if !bind(c, &payload) {
		return
	}

	settings, err := a.settings.UpdateSettings(service.SiteSettingsInput{
		SiteName:     payload.SiteName,
		Tagline:      payload.Tagline,
		ContactEmail: payload.ContactEmail,
		ContactPhone: payload.ContactPhone,
		Address:      payload.Address,
		LinkedInURL:  payload.LinkedInURL,
		TwitterURL:   payload.TwitterURL,
		GitHubURL:    payload.GitHubURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
