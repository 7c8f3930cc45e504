package service

import (
	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

const dashboardLatestEnquiries = 5

// DashboardSummary aggregates the numbers shown on the admin landing page.
type DashboardSummary struct {
	Blogs           ContentCount  `json:"blogs"`
	Services        ContentCount  `json:"services"`
	Solutions       ContentCount  `json:"solutions"`
	CaseStudies     ContentCount  `json:"caseStudies"`
	Users           int64         `json:"users"`
	Enquiries       int64         `json:"enquiries"`
	EnquiryStatuses []StatusCount `json:"enquiryStatuses"`
	LatestEnquiries []db.Enquiry  `json:"latestEnquiries"`
	RecentBlogs     []db.Blog     `json:"recentBlogs"`
}

// ContentCount splits a content type into published and unpublished records.
type ContentCount struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
}

// DashboardService reads cross-entity counters.
type DashboardService struct {
	db          *gorm.DB
	blogs       *BlogService
	offerings   *OfferingService
	solutions   *SolutionService
	caseStudies *CaseStudyService
	users       *UserService
	enquiries   *EnquiryService
}

// NewDashboardService creates a DashboardService instance.
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{
		db:          gdb,
		blogs:       NewBlogService(gdb),
		offerings:   NewOfferingService(gdb),
		solutions:   NewSolutionService(gdb),
		caseStudies: NewCaseStudyService(gdb),
		users:       NewUserService(gdb),
		enquiries:   NewEnquiryService(gdb),
	}
}

// Summary collects the dashboard counters.
func (s *DashboardService) Summary() (DashboardSummary, error) {
	var summary DashboardSummary
	var err error

	if summary.Blogs, err = s.blogs.Count(); err != nil {
		return summary, err
	}
	if summary.Services, err = s.offerings.Count(); err != nil {
		return summary, err
	}
	if summary.Solutions, err = s.solutions.Count(); err != nil {
		return summary, err
	}
	if summary.CaseStudies, err = s.caseStudies.Count(); err != nil {
		return summary, err
	}
	if summary.Users, err = s.users.Count(); err != nil {
		return summary, err
	}

	if err := s.db.Model(&db.Enquiry{}).Count(&summary.Enquiries).Error; err != nil {
		return summary, err
	}

	if summary.EnquiryStatuses, err = s.enquiries.CountByStatus(); err != nil {
		return summary, err
	}
	if summary.LatestEnquiries, err = s.enquiries.Latest(dashboardLatestEnquiries); err != nil {
		return summary, err
	}

	summary.RecentBlogs = []db.Blog{}
	if err := s.db.Order("updated_at desc").Order("id desc").Limit(5).Find(&summary.RecentBlogs).Error; err != nil {
		return summary, err
	}
	return summary, nil
}
