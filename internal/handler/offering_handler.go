package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/service"
)

type offeringRequest struct {
	Title     string   `json:"title" binding:"required,min=3,max=150"`
	Slug      string   `json:"slug" binding:"max=170"`
	Summary   string   `json:"summary" binding:"required,max=500"`
	Content   string   `json:"content"`
	Icon      string   `json:"icon" binding:"max=100"`
	Image     string   `json:"image" binding:"max=500"`
	Features  []string `json:"features" binding:"max=30,dive,max=200"`
	SortOrder *int     `json:"sortOrder" binding:"omitempty,gte=0"`
	Published bool     `json:"published"`
}

func (p offeringRequest) toInput() service.OfferingInput {
	return service.OfferingInput{
		Title:     p.Title,
		Slug:      p.Slug,
		Summary:   p.Summary,
		Content:   p.Content,
		Icon:      p.Icon,
		Image:     p.Image,
		Features:  p.Features,
		SortOrder: p.SortOrder,
		Published: p.Published,
	}
}

// ListServices returns the services catalogue.
func (a *API) ListServices(c *gin.Context) {
	result, err := a.offerings.List(service.CatalogFilter{
		Search:    c.Query("search"),
		Published: publishedFilter(c),
		Page:      queryInt(c, "page"),
		PerPage:   queryInt(c, "perPage"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetService looks a service up by id or slug.
func (a *API) GetService(c *gin.Context) {
	item, err := a.offerings.Get(c.Param("id"), !isAuthenticated(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateService adds a service to the catalogue.
func (a *API) CreateService(c *gin.Context) {
	var payload offeringRequest
	if !bind(c, &payload) {
		return
	}
	item, err := a.offerings.Create(payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateService modifies a service.
func (a *API) UpdateService(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload offeringRequest
	if !bind(c, &payload) {
		return
	}
	item, err := a.offerings.Update(id, payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteService removes a service.
func (a *API) DeleteService(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := a.offerings.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
