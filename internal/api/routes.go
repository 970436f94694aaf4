package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {

	// --- Theme Generation ---
	// One pipeline, three ways of obtaining the content model.
	themeGroup := router.Group("/theme")
	{
		themeGroup.POST("/generate", h.GenerateTheme) // LLM mode: free-text request
		themeGroup.POST("/build", h.BuildTheme)       // Form mode: explicit business fields
		themeGroup.POST("/convert", h.ConvertTheme)   // HTML mode: existing landing page
		themeGroup.POST("/preview", h.PreviewTheme)   // Standalone HTML preview of a content payload
		themeGroup.POST("/install", h.InstallTheme)   // Build and install through WP-CLI
	}

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

}
