package service

import (
	"errors"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var ErrOfferingNotFound = errors.New("service not found")

// CatalogFilter describes filters shared by the service and solution lists.
type CatalogFilter struct {
	Search    string
	Published *bool
	Page      int
	PerPage   int
}

// OfferingInput represents fields accepted when creating or updating a service.
type OfferingInput struct {
	Title     string
	Slug      string
	Summary   string
	Content   string
	Icon      string
	Image     string
	Features  []string
	SortOrder *int
	Published bool
}

// OfferingService manages the services catalogue.
type OfferingService struct {
	db *gorm.DB
}

// NewOfferingService creates an OfferingService instance.
func NewOfferingService(gdb *gorm.DB) *OfferingService {
	return &OfferingService{db: gdb}
}

// List returns services ordered by their catalogue position.
func (s *OfferingService) List(filter CatalogFilter) (ListResult[db.Service], error) {
	result := newListResult[db.Service](filter.Page, filter.PerPage)

	query := s.db.Model(&db.Service{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := likePattern(search)
		query = query.Where("(title LIKE ? ESCAPE '\\' OR summary LIKE ? ESCAPE '\\')", like, like)
	}

	if err := result.fill(query, nil, "sort_order asc", "id asc"); err != nil {
		return result, err
	}
	return result, nil
}

// Get fetches a service by id or slug.
func (s *OfferingService) Get(key string, publishedOnly bool) (*db.Service, error) {
	query := s.db.Model(&db.Service{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var item db.Service
	if err := findByIDOrSlug(query, key, &item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new service. Without an explicit position it is
// appended to the end of the catalogue.
func (s *OfferingService) Create(input OfferingInput) (*db.Service, error) {
	var item db.Service
	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := resolveSlug(tx, &db.Service{}, input.Slug, input.Title, 0)
		if err != nil {
			return err
		}

		sortOrder, err := sortOrderOrNext(tx, &db.Service{}, input.SortOrder)
		if err != nil {
			return err
		}

		item.Slug = slug
		item.SortOrder = sortOrder
		applyOffering(&item, input)
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing service.
func (s *OfferingService) Update(id uint, input OfferingInput) (*db.Service, error) {
	var item db.Service
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOfferingNotFound
			}
			return err
		}

		slug, err := resolveSlug(tx, &db.Service{}, keepSlug(input.Slug, item.Slug), input.Title, item.ID)
		if err != nil {
			return err
		}
		item.Slug = slug
		if input.SortOrder != nil {
			item.SortOrder = *input.SortOrder
		}
		applyOffering(&item, input)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a service.
func (s *OfferingService) Delete(id uint) error {
	result := s.db.Delete(&db.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

// Count returns the number of services split by publication state.
func (s *OfferingService) Count() (ContentCount, error) {
	return countContent(s.db.Model(&db.Service{}), "published = ?", true)
}

func applyOffering(item *db.Service, input OfferingInput) {
	item.Title = strings.TrimSpace(input.Title)
	item.Summary = strings.TrimSpace(input.Summary)
	item.Content = input.Content
	item.Icon = strings.TrimSpace(input.Icon)
	item.Image = strings.TrimSpace(input.Image)
	item.Features = cleanList(input.Features)
	item.Published = input.Published
}

func keepSlug(requested, current string) string {
	if strings.TrimSpace(requested) == "" {
		return current
	}
	return requested
}

func sortOrderOrNext(tx *gorm.DB, model interface{}, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	return nextSortOrder(tx, model)
}
