package router

import (
	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the gin engine and routes.
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// Stored uploads are served directly; the API base path assumes a
	// co-located reverse proxy in development.
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/auth/login", api.Login)

		// Public reads.
		apiGroup.GET("/pages", api.ListPages)
		apiGroup.GET("/pages/slug/:slug", api.GetPageBySlug)
		apiGroup.GET("/pages/slug/:slug/view", api.GetPageView)
		apiGroup.GET("/announcements", api.ListPublishedAnnouncements)
		apiGroup.GET("/gallery", api.ListPublishedGallery)

		// Admin routes require a bearer token.
		admin := apiGroup.Group("")
		admin.Use(api.AuthRequired())
		{
			admin.GET("/pages/:id", api.GetPage)
			admin.POST("/pages", api.CreatePage)
			admin.PUT("/pages/:id", api.UpdatePage)
			admin.DELETE("/pages/:id", api.DeletePage)

			admin.POST("/uploads", api.UploadImage)

			admin.GET("/admin/announcements", api.ListAnnouncements)
			admin.POST("/announcements", api.CreateAnnouncement)
			admin.PUT("/announcements/:id", api.UpdateAnnouncement)
			admin.DELETE("/announcements/:id", api.DeleteAnnouncement)

			admin.GET("/admin/gallery", api.ListGalleryImages)
			admin.POST("/gallery", api.CreateGalleryImage)
			admin.PUT("/gallery/:id", api.UpdateGalleryImage)
			admin.DELETE("/gallery/:id", api.DeleteGalleryImage)
		}
	}

	return r
}
