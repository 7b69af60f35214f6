package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/presets", h.listPresets)
		api.GET("/citation.png", h.citationPNG)
		api.GET("/citation.gif", h.citationGIF)
		api.POST("/citation", h.citationJSON)
		api.GET("/qr", h.qrHandler)
	}
}
