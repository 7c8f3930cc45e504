package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/service"
)

type solutionRequest struct {
	Title      string   `json:"title" binding:"required,min=3,max=150"`
	Slug       string   `json:"slug" binding:"max=170"`
	Summary    string   `json:"summary" binding:"required,max=500"`
	Content    string   `json:"content"`
	Image      string   `json:"image" binding:"max=500"`
	Industries []string `json:"industries" binding:"max=30,dive,max=100"`
	Benefits   []string `json:"benefits" binding:"max=30,dive,max=200"`
	SortOrder  *int     `json:"sortOrder" binding:"omitempty,gte=0"`
	Published  bool     `json:"published"`
}

func (p solutionRequest) toInput() service.SolutionInput {
	return service.SolutionInput{
		Title:      p.Title,
		Slug:       p.Slug,
		Summary:    p.Summary,
		Content:    p.Content,
		Image:      p.Image,
		Industries: p.Industries,
		Benefits:   p.Benefits,
		SortOrder:  p.SortOrder,
		Published:  p.Published,
	}
}

// ListSolutions returns solutions in catalogue order.
func (a *API) ListSolutions(c *gin.Context) {
	result, err := a.solutions.List(service.CatalogFilter{
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

// GetSolution looks a solution up by id or slug.
func (a *API) GetSolution(c *gin.Context) {
	item, err := a.solutions.Get(c.Param("id"), !isAuthenticated(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateSolution adds a solution.
func (a *API) CreateSolution(c *gin.Context) {
	var payload solutionRequest
	if !bind(c, &payload) {
		return
	}
	item, err := a.solutions.Create(payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateSolution modifies a solution.
func (a *API) UpdateSolution(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload solutionRequest
	if !bind(c, &payload) {
		return
	}
	item, err := a.solutions.Update(id, payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteSolution removes a solution.
func (a *API) DeleteSolution(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := a.solutions.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Solution deleted"})
}
