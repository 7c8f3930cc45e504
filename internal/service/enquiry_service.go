package service

import (
	"errors"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrEnquiryNotFound      = errors.New("enquiry not found")
	ErrEnquiryStatusInvalid = errors.New("enquiry status is invalid")
)

// EnquiryFilter describes filters for listing enquiries.
type EnquiryFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// EnquiryInput is a contact form submission.
type EnquiryInput struct {
	Name            string
	Email           string
	Phone           string
	Company         string
	Subject         string
	Message         string
	ServiceInterest string
	Source          string
	IPAddress       string
}

// EnquiryUpdate carries the workflow fields staff may change. Nil fields
// are left untouched.
type EnquiryUpdate struct {
	Status *string
	Notes  *string
}

// StatusCount is the number of enquiries in one workflow state.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// EnquiryService stores contact form submissions.
type EnquiryService struct {
	db *gorm.DB
}

// NewEnquiryService creates an EnquiryService instance.
func NewEnquiryService(gdb *gorm.DB) *EnquiryService {
	return &EnquiryService{db: gdb}
}

// Create records a new enquiry in the "new" state.
func (s *EnquiryService) Create(input EnquiryInput) (*db.Enquiry, error) {
	item := db.Enquiry{
		Name:            strings.TrimSpace(input.Name),
		Email:           db.NormalizeEmail(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		Company:         strings.TrimSpace(input.Company),
		Subject:         strings.TrimSpace(input.Subject),
		Message:         strings.TrimSpace(input.Message),
		ServiceInterest: strings.TrimSpace(input.ServiceInterest),
		Source:          strings.TrimSpace(input.Source),
		Status:          db.EnquiryStatusNew,
		IPAddress:       strings.TrimSpace(input.IPAddress),
	}
	if item.Source == "" {
		item.Source = "website"
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns enquiries, newest first.
func (s *EnquiryService) List(filter EnquiryFilter) (ListResult[db.Enquiry], error) {
	result := newListResult[db.Enquiry](filter.Page, filter.PerPage)

	query := s.db.Model(&db.Enquiry{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := likePattern(search)
		query = query.Where("(name LIKE ? ESCAPE '\\' OR email LIKE ? ESCAPE '\\' OR company LIKE ? ESCAPE '\\' OR subject LIKE ? ESCAPE '\\' OR message LIKE ? ESCAPE '\\')",
			like, like, like, like, like)
	}

	if err := result.fill(query, nil, "created_at desc", "id desc"); err != nil {
		return result, err
	}
	return result, nil
}

// Get fetches an enquiry by id.
func (s *EnquiryService) Get(id uint) (*db.Enquiry, error) {
	var item db.Enquiry
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnquiryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update changes the status and/or notes of an enquiry.
func (s *EnquiryService) Update(id uint, update EnquiryUpdate) (*db.Enquiry, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		status, err := normalizeEnquiryStatus(*update.Status)
		if err != nil {
			return nil, err
		}
		item.Status = status
	}
	if update.Notes != nil {
		item.Notes = strings.TrimSpace(*update.Notes)
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an enquiry.
func (s *EnquiryService) Delete(id uint) error {
	result := s.db.Delete(&db.Enquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnquiryNotFound
	}
	return nil
}

// CountByStatus returns a count for every known status, zero included.
func (s *EnquiryService) CountByStatus() ([]StatusCount, error) {
	var rows []StatusCount
	if err := s.db.Model(&db.Enquiry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	result := make([]StatusCount, 0, len(db.EnquiryStatuses))
	for _, status := range db.EnquiryStatuses {
		result = append(result, StatusCount{Status: status, Count: counts[status]})
	}
	return result, nil
}

// Latest returns the most recent enquiries.
func (s *EnquiryService) Latest(limit int) ([]db.Enquiry, error) {
	if limit <= 0 {
		limit = 5
	}
	items := []db.Enquiry{}
	if err := s.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func normalizeEnquiryStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	for _, known := range db.EnquiryStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", ErrEnquiryStatusInvalid
}
