// Package web wires the gateway's HTTP surface: the route-based pages of
// the original app expressed as gin route groups returning composed JSON
// view models.
package web

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reminisce/internal/albums"
	"reminisce/internal/auth"
	"reminisce/internal/backend"
	"reminisce/internal/cloudinary"
	"reminisce/internal/config"
	"reminisce/internal/department"
	"reminisce/internal/httpmiddleware"
	"reminisce/internal/notify"
	"reminisce/internal/session"
	"reminisce/internal/workflow"
)

// Server holds the gateway's collaborators plus the per-session workflow
// and demo album registries.
type Server struct {
	cfg      config.App
	backend  *backend.Client
	host     *cloudinary.Client
	sessions session.Store
	resolver *department.Resolver
	notifier *notify.Notifier

	mu    sync.Mutex
	flows map[string]*workflow.Workflow
	demos map[string]*albums.Store
}

// NewServer creates a gateway server.
func NewServer(cfg config.App, client *backend.Client, host *cloudinary.Client, sessions session.Store) *Server {
	return &Server{
		cfg:      cfg,
		backend:  client,
		host:     host,
		sessions: sessions,
		resolver: department.NewResolver(sessions, client),
		notifier: notify.New(cfg.NotificationTTL),
		flows:    make(map[string]*workflow.Workflow),
		demos:    make(map[string]*albums.Store),
	}
}

// Router builds the gin engine with the gateway middleware stack and all
// route groups.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(s.cfg.RateLimitPerMin, s.cfg.RateLimitPerMin).Middleware())
	r.Use(s.visitorSession())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		healthy := s.sessions.Healthy(c.Request.Context())
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "sessions": healthy})
	})

	api := r.Group("/api")
	{
		api.GET("/departments/search", s.searchDepartments)
		api.GET("/notifications", s.currentNotification)
		api.GET("/theme", s.getTheme)
		api.PUT("/theme", s.putTheme)

		dept := api.Group("/d/:slug")
		{
			dept.GET("", s.departmentPage)
			dept.GET("/students", s.listStudents)
			dept.GET("/events", s.listEvents)

			dept.GET("/albums", s.listDemoAlbums)
			dept.POST("/albums", s.addDemoAlbum)
			dept.PUT("/albums/:albumId", s.updateDemoAlbum)
			dept.DELETE("/albums/:albumId", s.deleteDemoAlbum)
			dept.POST("/albums/:albumId/pictures", s.addDemoPicture)
			dept.DELETE("/albums/:albumId/pictures/:pictureId", s.deleteDemoPicture)

			dept.GET("/gallery/:albumId", s.albumDetail)

			flow := dept.Group("/workflow/:purpose")
			{
				flow.GET("", s.workflowState)
				flow.POST("/begin", s.workflowBegin)
				flow.POST("/verify", s.workflowVerify)
				flow.POST("/images", s.workflowSubmitImages)
				flow.POST("/report", s.workflowSubmitReport)
				flow.POST("/profile", s.workflowSubmitProfile)
			}
		}

		admin := api.Group("/admin")
		{
			admin.POST("/signup", s.adminSignup)
			admin.POST("/signin", s.adminSignin)

			authed := admin.Group("", auth.AdminAuth(s.cfg.JWTSigningKey, s.cfg.JWTIssuer, s.sessions))
			authed.POST("/signout", s.adminSignout)
			authed.GET("/me", s.adminMe)
			authed.GET("/statistics", s.adminStatistics)
			authed.GET("/albums/:id", s.adminAlbum)
			authed.DELETE("/images/:id", s.adminDeleteImage)
		}
	}

	return r
}

// corsMiddleware answers browser preflight and reflects the origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
