package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"content-hub/internal/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Content     *ContentHandler
	Guides      *GuideHandler
	Preferences *PreferencesHandler
	Health      *HealthHandler
	// Transfer is optional; without it the import and export routes are not mounted.
	Transfer *TransferHandler
}

// NewRouter builds the gin engine with middleware, probes and the v1 API.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.AccessLog())

	// Health and metrics endpoints
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)
	router.GET("/live", h.Health.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		content := v1.Group("/content")
		{
			content.GET("", h.Content.List)
			content.POST("", h.Content.Create)
			content.GET("/counts", h.Content.Counts)
			content.POST("/refresh", h.Content.Refresh)
			content.PUT("/:id", h.Content.Update)
			if h.Transfer != nil {
				content.GET("/export", h.Transfer.Export)
				content.POST("/import", h.Transfer.Import)
			}
		}
		v1.GET("/categories", h.Content.Categories)

		guides := v1.Group("/guides")
		{
			guides.GET("", h.Guides.List)
			guides.GET("/:slug", h.Guides.Get)
		}

		prefs := v1.Group("/preferences")
		{
			prefs.GET("", h.Preferences.Get)
			prefs.PATCH("", h.Preferences.Patch)
			prefs.POST("/theme/toggle", h.Preferences.ToggleTheme)
		}
	}

	return router
}
