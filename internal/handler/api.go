package handler

import (
	"github.com/sitecms/internal/auth"
	"github.com/sitecms/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	tokens       *auth.TokenManager
	users        *service.UserService
	blogs        *service.BlogService
	offerings    *service.OfferingService
	solutions    *service.SolutionService
	caseStudies  *service.CaseStudyService
	enquiries    *service.EnquiryService
	settings     *service.SettingService
	dashboard    *service.DashboardService
	uploads      *service.UploadService
	cookieSecure bool
}

// Options configures the parts of the API that do not come from the database.
type Options struct {
	Tokens       *auth.TokenManager
	UploadDir    string
	UploadURL    string
	UploadMax    int64
	CookieSecure bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	return &API{
		db:           gdb,
		tokens:       opts.Tokens,
		users:        service.NewUserService(gdb),
		blogs:        service.NewBlogService(gdb),
		offerings:    service.NewOfferingService(gdb),
		solutions:    service.NewSolutionService(gdb),
		caseStudies:  service.NewCaseStudyService(gdb),
		enquiries:    service.NewEnquiryService(gdb),
		settings:     service.NewSettingService(gdb),
		dashboard:    service.NewDashboardService(gdb),
		uploads:      service.NewUploadService(opts.UploadDir, opts.UploadURL, opts.UploadMax),
		cookieSecure: opts.CookieSecure,
	}
}

// Users exposes the account service for authentication middleware.
func (a *API) Users() *service.UserService {
	return a.users
}

// Tokens exposes the token manager used at login.
func (a *API) Tokens() *auth.TokenManager {
	return a.tokens
}
