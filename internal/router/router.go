package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/errs"
	"github.com/sitecms/internal/handler"
	"github.com/sitecms/internal/middleware"
)

const sessionName = "sitecms_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg config.AppConfig, log zerolog.Logger) *gin.Engine {
	middleware.UseJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.Recovery())

	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Auth.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.NoRoute(func(c *gin.Context) {
		middleware.Abort(c, errs.NewNotFoundError("Route not found"))
	})

	// 静态文件服务
	r.Static(cfg.Upload.URLPath, cfg.Upload.Dir)

	r.GET("/ping", api.Ping)
	r.GET("/healthz", api.HealthCheck)

	authed := middleware.RequireAuth
	admin := middleware.RequireRole(db.RoleAdmin)

	apiGroup := r.Group("/api")
	apiGroup.Use(
		middleware.BodyLimit(cfg.Server.BodyLimit),
		middleware.ParseRequest(cfg.Upload.MaxBytes),
		middleware.Authenticate(api.Tokens(), api.Users()),
	)

	users := apiGroup.Group("/users")
	{
		users.POST("/login", api.Login)
		users.POST("/logout", api.Logout)
		users.GET("/profile", middleware.Chain(api.GetProfile, authed))
		users.PUT("/profile", middleware.Chain(api.UpdateProfile, authed))

		// 账号管理仅限管理员
		manage := users.Group("", middleware.Guards(authed, admin))
		manage.POST("/register", api.RegisterUser)
		manage.GET("", api.ListUsers)
		manage.GET("/:id", api.GetUser)
		manage.PUT("/:id", api.UpdateUser)
		manage.DELETE("/:id", api.DeleteUser)
	}

	blogs := apiGroup.Group("/blogs")
	{
		blogs.GET("", api.ListBlogs)
		blogs.GET("/categories", api.ListBlogCategories)
		blogs.GET("/:id", api.GetBlog)
		blogs.POST("", middleware.Chain(api.CreateBlog, authed))
		blogs.PUT("/:id", middleware.Chain(api.UpdateBlog, authed))
		blogs.DELETE("/:id", middleware.Chain(api.DeleteBlog, authed))
		blogs.POST("/:id/publish", middleware.Chain(api.PublishBlog, authed))
		blogs.POST("/:id/unpublish", middleware.Chain(api.UnpublishBlog, authed))
	}

	services := apiGroup.Group("/services")
	{
		services.GET("", api.ListServices)
		services.GET("/:id", api.GetService)
		services.POST("", middleware.Chain(api.CreateService, authed))
		services.PUT("/:id", middleware.Chain(api.UpdateService, authed))
		services.DELETE("/:id", middleware.Chain(api.DeleteService, authed))
	}

	solutions := apiGroup.Group("/solutions")
	{
		solutions.GET("", api.ListSolutions)
		solutions.GET("/:id", api.GetSolution)
		solutions.POST("", middleware.Chain(api.CreateSolution, authed))
		solutions.PUT("/:id", middleware.Chain(api.UpdateSolution, authed))
		solutions.DELETE("/:id", middleware.Chain(api.DeleteSolution, authed))
	}

	caseStudies := apiGroup.Group("/case-studies")
	{
		caseStudies.GET("", api.ListCaseStudies)
		caseStudies.GET("/:id", api.GetCaseStudy)
		caseStudies.POST("", middleware.Chain(api.CreateCaseStudy, authed))
		caseStudies.PUT("/:id", middleware.Chain(api.UpdateCaseStudy, authed))
		caseStudies.DELETE("/:id", middleware.Chain(api.DeleteCaseStudy, authed))
	}

	enquiries := apiGroup.Group("/enquiries")
	{
		enquiries.POST("", api.CreateEnquiry)
		enquiries.GET("", middleware.Chain(api.ListEnquiries, authed))
		enquiries.GET("/:id", middleware.Chain(api.GetEnquiry, authed))
		enquiries.PATCH("/:id", middleware.Chain(api.UpdateEnquiry, authed))
		enquiries.DELETE("/:id", middleware.Chain(api.DeleteEnquiry, authed, admin))
	}

	apiGroup.POST("/uploads", middleware.Chain(api.UploadImage, authed))

	apiGroup.GET("/settings", api.GetSettings)
	apiGroup.PUT("/settings", middleware.Chain(api.UpdateSettings, authed, admin))

	apiGroup.GET("/dashboard", middleware.Chain(api.Dashboard, authed))

	return r
}
