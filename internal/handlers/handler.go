package handlers

import (
	"net/http"

	"school_cms/internal/logger"
	"school_cms/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID)
	router.Use(cors.New(corsConfig()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerPublicRoutes(router)
	h.registerAuthRoutes(router)
	h.registerAdminRoutes(router)

	// Live news feed (HTTP upgrade) — same port
	router.GET("/ws/news", h.wsNews)

	return router
}

// Public site data consumed by the front end without credentials.
func (h *Handler) registerPublicRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/news", h.getNews)
		api.GET("/events", h.getEvents)
		api.GET("/testimonials", h.getTestimonials)
		api.GET("/posts", h.getPosts)
		api.POST("/contact", h.submitContact)

		api.GET("/pages", h.getPublishedPages)
		api.GET("/pages/:slug", h.getPageBySlug)
		api.GET("/pages/:slug/components", h.getPageComponentsBySlug)

		api.GET("/menu", h.getMenu)
		api.GET("/settings", h.getSettings)

		api.GET("/forms/:name", h.getForm)
		api.POST("/forms/:name/submissions", h.submitForm)
	}
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", h.loginRateLimit, h.login)
		auth.POST("/logout", h.authenticate, h.logout)
		auth.GET("/me", h.authenticate, h.me)
	}
}

// Admin surface; every route runs behind authentication plus the admin gate.
func (h *Handler) registerAdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", h.authenticate, h.requireAdmin)
	{
		admin.POST("/users", h.createUser)
		admin.POST("/posts", h.createPost)

		admin.GET("/pages", h.listPages)
		admin.POST("/pages", h.createPage)
		admin.PUT("/pages/:id", h.updatePage)
		admin.DELETE("/pages/:id", h.deletePage)
		admin.GET("/pages/:id/components", h.listPageComponents)
		admin.POST("/components", h.createComponent)
		admin.PUT("/components/:id", h.updateComponent)
		admin.DELETE("/components/:id", h.deleteComponent)

		admin.GET("/menu", h.listMenuItems)
		admin.POST("/menu", h.createMenuItem)
		admin.PUT("/menu/:id", h.updateMenuItem)
		admin.DELETE("/menu/:id", h.deleteMenuItem)

		admin.GET("/forms", h.listForms)
		admin.POST("/forms", h.createForm)
		admin.PUT("/forms/:id", h.updateForm)
		admin.DELETE("/forms/:id", h.deleteForm)
		admin.GET("/forms/:id/submissions", h.listFormSubmissions)

		admin.PUT("/settings", h.updateSettings)
	}
}

// corsConfig builds the CORS policy from config, defaulting to a permissive
// localhost setup for development.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := viper.GetStringSlice("cors.allowed_origins")
	if len(origins) == 0 {
		origins = []string{"http://localhost:5000", "http://127.0.0.1:5000"}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Requested-With")
	return cfg
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
