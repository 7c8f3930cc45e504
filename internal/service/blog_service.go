package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrBlogNotFound      = errors.New("blog not found")
	ErrBlogStatusInvalid = errors.New("blog status is invalid")
)

const blogExcerptLimit = 300

// BlogService wraps blog related database operations.
type BlogService struct {
	db  *gorm.DB
	now func() time.Time
}

// BlogFilter describes filters for listing blogs.
type BlogFilter struct {
	Search   string
	Status   string
	Category string
	Tag      string
	AuthorID uint
	Page     int
	PerPage  int
}

// BlogInput represents fields accepted when creating or updating a blog.
type BlogInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Category   string
	Tags       []string
	Status     string
	AuthorID   uint
}

// CategoryCount is a published category with the number of posts in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB) *BlogService {
	return &BlogService{db: gdb, now: time.Now}
}

// List provides paginated blogs filtered by the given criteria.
func (s *BlogService) List(filter BlogFilter) (ListResult[db.Blog], error) {
	result := newListResult[db.Blog](filter.Page, filter.PerPage)

	query := s.db.Model(&db.Blog{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := likePattern(search)
		query = query.Where("(title LIKE ? ESCAPE '\\' OR excerpt LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\')", like, like, like)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		// tags are stored lowercased, see cleanTags
		query = query.Where("EXISTS (SELECT 1 FROM json_each(blogs.tags) WHERE json_each.value = ?)", strings.ToLower(tag))
	}
	if filter.AuthorID > 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}

	order := []string{"created_at desc", "id desc"}
	if strings.EqualFold(filter.Status, db.StatusPublished) {
		order = []string{"published_at desc", "id desc"}
	}

	if err := result.fill(query, []string{"Author"}, order...); err != nil {
		return result, err
	}
	return result, nil
}

// Get fetches a blog by id or slug. With publishedOnly set, drafts are
// reported as not found.
func (s *BlogService) Get(key string, publishedOnly bool) (*db.Blog, error) {
	query := s.db.Preload("Author")
	if publishedOnly {
		query = query.Where("status = ?", db.StatusPublished)
	}

	var blog db.Blog
	if err := findByIDOrSlug(query, key, &blog); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// Create persists a new blog post.
func (s *BlogService) Create(input BlogInput) (*db.Blog, error) {
	status, err := normalizeBlogStatus(input.Status)
	if err != nil {
		return nil, err
	}

	blog := db.Blog{AuthorID: input.AuthorID}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := resolveSlug(tx, &db.Blog{}, input.Slug, input.Title, 0)
		if err != nil {
			return err
		}
		blog.Slug = slug
		s.apply(&blog, input, status)
		return tx.Create(&blog).Error
	}); err != nil {
		return nil, err
	}

	return s.reload(blog.ID)
}

// Update applies updates to an existing blog. The author is kept, and so
// is the status when input.Status is blank.
func (s *BlogService) Update(id uint, input BlogInput) (*db.Blog, error) {
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.Blog
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBlogNotFound
			}
			return err
		}

		status := existing.Status
		if strings.TrimSpace(input.Status) != "" {
			var err error
			if status, err = normalizeBlogStatus(input.Status); err != nil {
				return err
			}
		}

		requested := input.Slug
		if strings.TrimSpace(requested) == "" {
			requested = existing.Slug
		}
		slug, err := resolveSlug(tx, &db.Blog{}, requested, input.Title, existing.ID)
		if err != nil {
			return err
		}
		existing.Slug = slug
		s.apply(&existing, input, status)
		return tx.Save(&existing).Error
	}); err != nil {
		return nil, err
	}

	return s.reload(id)
}

// Delete removes a blog by id.
func (s *BlogService) Delete(id uint) error {
	result := s.db.Delete(&db.Blog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// Publish marks the blog as published. publishedAt overrides the
// timestamp; an already published blog keeps its original date otherwise.
func (s *BlogService) Publish(id uint, publishedAt *time.Time) (*db.Blog, error) {
	var blog db.Blog
	if err := s.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	when := s.now()
	switch {
	case publishedAt != nil && !publishedAt.IsZero():
		when = *publishedAt
	case blog.PublishedAt != nil && blog.IsPublished():
		when = *blog.PublishedAt
	}

	if err := s.db.Model(&blog).Updates(map[string]interface{}{
		"status":       db.StatusPublished,
		"published_at": when,
	}).Error; err != nil {
		return nil, err
	}
	return s.reload(id)
}

// Unpublish moves the blog back to draft.
func (s *BlogService) Unpublish(id uint) (*db.Blog, error) {
	result := s.db.Model(&db.Blog{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       db.StatusDraft,
		"published_at": nil,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBlogNotFound
	}
	return s.reload(id)
}

// Categories returns the categories of published blogs with post counts.
func (s *BlogService) Categories() ([]CategoryCount, error) {
	categories := []CategoryCount{}
	if err := s.db.Model(&db.Blog{}).
		Select("category AS name, COUNT(*) AS count").
		Where("status = ? AND category <> ''", db.StatusPublished).
		Group("category").
		Order("COUNT(*) desc").
		Order("category asc").
		Scan(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count returns the number of blogs split by publication state.
func (s *BlogService) Count() (ContentCount, error) {
	return countContent(s.db.Model(&db.Blog{}), "status = ?", db.StatusPublished)
}

func (s *BlogService) apply(blog *db.Blog, input BlogInput, status string) {
	blog.Title = strings.TrimSpace(input.Title)
	blog.Content = input.Content
	blog.CoverImage = strings.TrimSpace(input.CoverImage)
	blog.Category = strings.TrimSpace(input.Category)
	blog.Tags = cleanTags(input.Tags)
	blog.ReadingTime = calculateReadingTime(input.Content)

	blog.Excerpt = strings.TrimSpace(input.Excerpt)
	if blog.Excerpt == "" {
		blog.Excerpt = summarizeContent(input.Content, blogExcerptLimit)
	}

	switch {
	case status == db.StatusPublished && !blog.IsPublished():
		now := s.now()
		blog.PublishedAt = &now
	case status == db.StatusDraft:
		blog.PublishedAt = nil
	}
	blog.Status = status
}

func (s *BlogService) reload(id uint) (*db.Blog, error) {
	var blog db.Blog
	if err := s.db.Preload("Author").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func normalizeBlogStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case "":
		return db.StatusDraft, nil
	case db.StatusDraft, db.StatusPublished:
		return status, nil
	default:
		return "", ErrBlogStatusInvalid
	}
}
