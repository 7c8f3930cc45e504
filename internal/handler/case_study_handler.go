package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/service"
)

type caseStudyRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=200"`
	Slug         string   `json:"slug" binding:"max=220"`
	Client       string   `json:"client" binding:"required,max=150"`
	Industry     string   `json:"industry" binding:"max=100"`
	Summary      string   `json:"summary" binding:"required,max=500"`
	Challenge    string   `json:"challenge"`
	Solution     string   `json:"solution"`
	Results      []string `json:"results" binding:"max=30,dive,max=300"`
	Technologies []string `json:"technologies" binding:"max=30,dive,max=100"`
	Content      string   `json:"content"`
	CoverImage   string   `json:"coverImage" binding:"max=500"`
	Featured     bool     `json:"featured"`
	Published    bool     `json:"published"`
	SortOrder    *int     `json:"sortOrder" binding:"omitempty,gte=0"`
}

type caseStudyResponse struct {
	db.CaseStudy
	ContentHTML string `json:"contentHtml"`
}

func (p caseStudyRequest) toInput() service.CaseStudyInput {
	return service.CaseStudyInput{
		Title:        p.Title,
		Slug:         p.Slug,
		Client:       p.Client,
		Industry:     p.Industry,
		Summary:      p.Summary,
		Challenge:    p.Challenge,
		Solution:     p.Solution,
		Results:      p.Results,
		Technologies: p.Technologies,
		Content:      p.Content,
		CoverImage:   p.CoverImage,
		Featured:     p.Featured,
		Published:    p.Published,
		SortOrder:    p.SortOrder,
	}
}

// ListCaseStudies returns case studies filtered by ?industry= and ?featured=.
func (a *API) ListCaseStudies(c *gin.Context) {
	result, err := a.caseStudies.List(service.CaseStudyFilter{
		Search:    c.Query("search"),
		Industry:  c.Query("industry"),
		Featured:  queryBool(c, "featured"),
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

// GetCaseStudy looks a case study up by id or slug.
func (a *API) GetCaseStudy(c *gin.Context) {
	item, err := a.caseStudies.Get(c.Param("id"), !isAuthenticated(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, caseStudyResponse{CaseStudy: *item, ContentHTML: service.RenderMarkdown(item.Content)})
}

// CreateCaseStudy adds a case study.
func (a *API) CreateCaseStudy(c *gin.Context) {
	var payload caseStudyRequest
	if !bind(c, &payload) {
		return
	}
	item, err := a.caseStudies.Create(payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateCaseStudy modifies a case study.
func (a *API) UpdateCaseStudy(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload caseStudyRequest
	if !bind(c, &payload) {
		return
	}
	item, err := a.caseStudies.Update(id, payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteCaseStudy removes a case study.
func (a *API) DeleteCaseStudy(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := a.caseStudies.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Case study deleted"})
}
