package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSlugTaken   = errors.New("slug already exists")
	ErrSlugInvalid = errors.New("slug must contain letters or digits")
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// ListResult is the paginated envelope returned by every list operation.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
}

func newListResult[T any](page, perPage int) ListResult[T] {
	return ListResult[T]{
		Items:   []T{},
		Page:    normalizePage(page),
		PerPage: normalizePerPage(perPage, defaultPerPage),
	}
}

// fill counts the filtered query, then loads one page of rows in order.
// Preloads only apply to the page query.
func (r *ListResult[T]) fill(query *gorm.DB, preloads []string, order ...string) error {
	base := query.Session(&gorm.Session{})
	if err := base.Count(&r.Total).Error; err != nil {
		return err
	}
	r.TotalPages = calculateTotalPages(r.Total, r.PerPage)

	dataQuery := base
	for _, name := range preloads {
		dataQuery = dataQuery.Preload(name)
	}
	for _, o := range order {
		dataQuery = dataQuery.Order(o)
	}
	offset := (r.Page - 1) * r.PerPage
	return dataQuery.Limit(r.PerPage).Offset(offset).Find(&r.Items).Error
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// resolveSlug turns the requested slug (or the title when none was given)
// into a unique slug for model's table. Generated slugs get a numeric
// suffix on collision; an explicit slug that collides is rejected.
func resolveSlug(tx *gorm.DB, model interface{}, requested, title string, excludeID uint) (string, error) {
	explicit := strings.TrimSpace(requested) != ""
	source := title
	if explicit {
		source = requested
	}

	base := db.Slugify(source)
	if base == "" {
		return "", ErrSlugInvalid
	}

	candidate := base
	for i := 2; ; i++ {
		var count int64
		query := tx.Model(model).Where("slug = ?", candidate)
		if excludeID > 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		if explicit {
			return "", ErrSlugTaken
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// findByIDOrSlug loads dst by numeric id first and falls back to the slug,
// so numeric-looking slugs still resolve.
func findByIDOrSlug(query *gorm.DB, key string, dst interface{}) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return gorm.ErrRecordNotFound
	}

	base := query.Session(&gorm.Session{})
	if id, err := strconv.ParseUint(key, 10, 32); err == nil && id > 0 {
		err := base.First(dst, id).Error
		if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return base.Where("slug = ?", key).First(dst).Error
}

// cleanList trims entries, drops blanks and removes case-insensitive duplicates.
func cleanList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern wraps search for a substring LIKE match. Callers must add
// ESCAPE '\' to the clause so wildcards in the input are taken literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(search)) + "%"
}

// summarizeContent strips markdown punctuation and cuts the text at limit runes.
func summarizeContent(markdown string, limit int) string {
	replacer := strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		"_", " ",
		">", " ",
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
	)
	plain := strings.Join(strings.Fields(replacer.Replace(markdown)), " ")
	if plain == "" {
		return ""
	}

	if utf8.RuneCountInString(plain) <= limit {
		return plain
	}

	runes := []rune(plain)
	cut := strings.TrimSpace(string(runes[:limit-1]))
	return cut + "…"
}

// calculateReadingTime assumes 200 words per minute, rounded up.
func calculateReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}

	minutes := words / 200
	if words%200 != 0 {
		minutes++
	}
	return minutes
}

// countContent counts all rows of query and those matching publishedWhere.
func countContent(query *gorm.DB, publishedWhere string, arg interface{}) (ContentCount, error) {
	var result ContentCount
	if err := query.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return result, err
	}
	if err := query.Session(&gorm.Session{}).Where(publishedWhere, arg).Count(&result.Published).Error; err != nil {
		return result, err
	}
	result.Drafts = result.Total - result.Published
	return result, nil
}

// cleanTags lowercases tags before cleanList so lookups can compare them
// exactly; sqlite's LOWER only folds ASCII.
func cleanTags(values []string) []string {
	lowered := make([]string, len(values))
	for i, value := range values {
		lowered[i] = strings.ToLower(value)
	}
	return cleanList(lowered)
}

func nextSortOrder(tx *gorm.DB, model interface{}) (int, error) {
	var maxOrder int
	if err := tx.Model(model).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
