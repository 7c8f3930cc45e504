package service

import (
	"errors"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var ErrSolutionNotFound = errors.New("solution not found")

// SolutionInput represents fields accepted when creating or updating a solution.
type SolutionInput struct {
	Title      string
	Slug       string
	Summary    string
	Content    string
	Image      string
	Industries []string
	Benefits   []string
	SortOrder  *int
	Published  bool
}

// SolutionService handles solution CRUD.
type SolutionService struct {
	db *gorm.DB
}

// NewSolutionService creates a SolutionService instance.
func NewSolutionService(gdb *gorm.DB) *SolutionService {
	return &SolutionService{db: gdb}
}

// List returns solutions ordered by their catalogue position.
func (s *SolutionService) List(filter CatalogFilter) (ListResult[db.Solution], error) {
	result := newListResult[db.Solution](filter.Page, filter.PerPage)

	query := s.db.Model(&db.Solution{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := likePattern(search)
		query = query.Where("(title LIKE ? ESCAPE '\\' OR summary LIKE ? ESCAPE '\\' OR industries LIKE ? ESCAPE '\\')", like, like, like)
	}

	if err := result.fill(query, nil, "sort_order asc", "id asc"); err != nil {
		return result, err
	}
	return result, nil
}

// Get fetches a solution by id or slug.
func (s *SolutionService) Get(key string, publishedOnly bool) (*db.Solution, error) {
	query := s.db.Model(&db.Solution{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var item db.Solution
	if err := findByIDOrSlug(query, key, &item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSolutionNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new solution.
func (s *SolutionService) Create(input SolutionInput) (*db.Solution, error) {
	var item db.Solution
	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := resolveSlug(tx, &db.Solution{}, input.Slug, input.Title, 0)
		if err != nil {
			return err
		}
		sortOrder, err := sortOrderOrNext(tx, &db.Solution{}, input.SortOrder)
		if err != nil {
			return err
		}

		item.Slug = slug
		item.SortOrder = sortOrder
		applySolution(&item, input)
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing solution.
func (s *SolutionService) Update(id uint, input SolutionInput) (*db.Solution, error) {
	var item db.Solution
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSolutionNotFound
			}
			return err
		}

		slug, err := resolveSlug(tx, &db.Solution{}, keepSlug(input.Slug, item.Slug), input.Title, item.ID)
		if err != nil {
			return err
		}
		item.Slug = slug
		if input.SortOrder != nil {
			item.SortOrder = *input.SortOrder
		}
		applySolution(&item, input)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a solution.
func (s *SolutionService) Delete(id uint) error {
	result := s.db.Delete(&db.Solution{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSolutionNotFound
	}
	return nil
}

// Count returns the number of solutions split by publication state.
func (s *SolutionService) Count() (ContentCount, error) {
	return countContent(s.db.Model(&db.Solution{}), "published = ?", true)
}

func applySolution(item *db.Solution, input SolutionInput) {
	item.Title = strings.TrimSpace(input.Title)
	item.Summary = strings.TrimSpace(input.Summary)
	item.Content = input.Content
	item.Image = strings.TrimSpace(input.Image)
	item.Industries = cleanList(input.Industries)
	item.Benefits = cleanList(input.Benefits)
	item.Published = input.Published
}
