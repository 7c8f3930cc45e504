package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/middleware"
	"github.com/sitecms/internal/service"
)

type blogRequest struct {
	Title      string   `json:"title" binding:"required,min=3,max=200"`
	Slug       string   `json:"slug" binding:"max=220"`
	Excerpt    string   `json:"excerpt" binding:"max=500"`
	Content    string   `json:"content" binding:"required"`
	CoverImage string   `json:"coverImage" binding:"max=500"`
	Category   string   `json:"category" binding:"max=100"`
	Tags       []string `json:"tags" binding:"max=20,dive,max=50"`
	Status     string   `json:"status" binding:"omitempty,oneof=draft published"`
}

type publishRequest struct {
	PublishedAt *time.Time `json:"publishedAt"`
}

type blogResponse struct {
	db.Blog
	ContentHTML string `json:"contentHtml"`
}

func (p blogRequest) toInput(authorID uint) service.BlogInput {
	return service.BlogInput{
		Title:      p.Title,
		Slug:       p.Slug,
		Excerpt:    p.Excerpt,
		Content:    p.Content,
		CoverImage: p.CoverImage,
		Category:   p.Category,
		Tags:       p.Tags,
		Status:     p.Status,
		AuthorID:   authorID,
	}
}

// ListBlogs 返回博客列表，匿名访问仅包含已发布文章
func (a *API) ListBlogs(c *gin.Context) {
	status := db.StatusPublished
	if isAuthenticated(c) {
		status = strings.ToLower(strings.TrimSpace(c.Query("status")))
	}

	result, err := a.blogs.List(service.BlogFilter{
		Search:   c.Query("search"),
		Status:   status,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		AuthorID: queryUint(c, "author"),
		Page:     queryInt(c, "page"),
		PerPage:  queryInt(c, "perPage"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBlog 按 ID 或 slug 获取文章
func (a *API) GetBlog(c *gin.Context) {
	blog, err := a.blogs.Get(c.Param("id"), !isAuthenticated(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogResponse{Blog: *blog, ContentHTML: service.RenderMarkdown(blog.Content)})
}

// ListBlogCategories 返回已发布文章的分类统计
func (a *API) ListBlogCategories(c *gin.Context) {
	categories, err := a.blogs.Categories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateBlog 创建文章，作者为当前用户
func (a *API) CreateBlog(c *gin.Context) {
	var payload blogRequest
	if !bind(c, &payload) {
		return
	}

	var authorID uint
	if user, ok := middleware.CurrentUser(c); ok {
		authorID = user.ID
	}

	blog, err := a.blogs.Create(payload.toInput(authorID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

// UpdateBlog 更新文章内容
func (a *API) UpdateBlog(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload blogRequest
	if !bind(c, &payload) {
		return
	}

	blog, err := a.blogs.Update(id, payload.toInput(0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// DeleteBlog 删除文章
func (a *API) DeleteBlog(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := a.blogs.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted"})
}

// PublishBlog 发布文章，可指定发布时间
func (a *API) PublishBlog(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload publishRequest
	if !bind(c, &payload) {
		return
	}

	blog, err := a.blogs.Publish(id, payload.PublishedAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// UnpublishBlog 将文章撤回为草稿
func (a *API) UnpublishBlog(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	blog, err := a.blogs.Unpublish(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}
