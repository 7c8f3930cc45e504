package db

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Blog 定义了博客文章模型
type Blog struct {
	Model
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	CoverImage  string     `json:"coverImage"`
	Category    string     `gorm:"size:100;index" json:"category"`
	Tags        []string   `gorm:"serializer:json" json:"tags"`
	Status      string     `gorm:"size:20;index;not null;default:draft" json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ReadingTime int        `json:"readingTime"`
	AuthorID    uint       `gorm:"index" json:"authorId"`
	Author      *User      `json:"author,omitempty"`
}

// IsPublished reports whether the post is visible on the public site.
func (b *Blog) IsPublished() bool {
	return b.Status == StatusPublished
}
