package service

import (
	"errors"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var ErrCaseStudyNotFound = errors.New("case study not found")

// CaseStudyFilter describes filters for listing case studies.
type CaseStudyFilter struct {
	Search    string
	Industry  string
	Featured  *bool
	Published *bool
	Page      int
	PerPage   int
}

// CaseStudyInput represents fields accepted when creating or updating a case study.
type CaseStudyInput struct {
	Title        string
	Slug         string
	Client       string
	Industry     string
	Summary      string
	Challenge    string
	Solution     string
	Results      []string
	Technologies []string
	Content      string
	CoverImage   string
	Featured     bool
	Published    bool
	SortOrder    *int
}

// CaseStudyService handles case study CRUD.
type CaseStudyService struct {
	db *gorm.DB
}

// NewCaseStudyService creates a CaseStudyService instance.
func NewCaseStudyService(gdb *gorm.DB) *CaseStudyService {
	return &CaseStudyService{db: gdb}
}

// List returns case studies, featured ones first.
func (s *CaseStudyService) List(filter CaseStudyFilter) (ListResult[db.CaseStudy], error) {
	result := newListResult[db.CaseStudy](filter.Page, filter.PerPage)

	query := s.db.Model(&db.CaseStudy{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if industry := strings.TrimSpace(filter.Industry); industry != "" {
		query = query.Where("LOWER(industry) = LOWER(?)", industry)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := likePattern(search)
		query = query.Where("(title LIKE ? ESCAPE '\\' OR client LIKE ? ESCAPE '\\' OR summary LIKE ? ESCAPE '\\')", like, like, like)
	}

	if err := result.fill(query, nil, "featured desc", "sort_order asc", "id desc"); err != nil {
		return result, err
	}
	return result, nil
}

// Get fetches a case study by id or slug.
func (s *CaseStudyService) Get(key string, publishedOnly bool) (*db.CaseStudy, error) {
	query := s.db.Model(&db.CaseStudy{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var item db.CaseStudy
	if err := findByIDOrSlug(query, key, &item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseStudyNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new case study.
func (s *CaseStudyService) Create(input CaseStudyInput) (*db.CaseStudy, error) {
	var item db.CaseStudy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := resolveSlug(tx, &db.CaseStudy{}, input.Slug, input.Title, 0)
		if err != nil {
			return err
		}
		sortOrder, err := sortOrderOrNext(tx, &db.CaseStudy{}, input.SortOrder)
		if err != nil {
			return err
		}

		item.Slug = slug
		item.SortOrder = sortOrder
		applyCaseStudy(&item, input)
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing case study.
func (s *CaseStudyService) Update(id uint, input CaseStudyInput) (*db.CaseStudy, error) {
	var item db.CaseStudy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCaseStudyNotFound
			}
			return err
		}

		slug, err := resolveSlug(tx, &db.CaseStudy{}, keepSlug(input.Slug, item.Slug), input.Title, item.ID)
		if err != nil {
			return err
		}
		item.Slug = slug
		if input.SortOrder != nil {
			item.SortOrder = *input.SortOrder
		}
		applyCaseStudy(&item, input)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a case study.
func (s *CaseStudyService) Delete(id uint) error {
	result := s.db.Delete(&db.CaseStudy{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCaseStudyNotFound
	}
	return nil
}

// Count returns the number of case studies split by publication state.
func (s *CaseStudyService) Count() (ContentCount, error) {
	return countContent(s.db.Model(&db.CaseStudy{}), "published = ?", true)
}

func applyCaseStudy(item *db.CaseStudy, input CaseStudyInput) {
	item.Title = strings.TrimSpace(input.Title)
	item.Client = strings.TrimSpace(input.Client)
	item.Industry = strings.TrimSpace(input.Industry)
	item.Summary = strings.TrimSpace(input.Summary)
	item.Challenge = input.Challenge
	item.Solution = input.Solution
	item.Results = cleanList(input.Results)
	item.Technologies = cleanList(input.Technologies)
	item.Content = input.Content
	item.CoverImage = strings.TrimSpace(input.CoverImage)
	item.Featured = input.Featured
	item.Published = input.Published
}
