package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/longbourn/pemberley/controllers"
)

// initBookImageRoutes initializes the per-book image routes
func initBookImageRoutes(router *gin.Engine, handler *controllers.ImageHandler, adminAuth gin.HandlerFunc) {
	images := router.Group("/books/:id/images")
	{
		// Public routes
		images.GET("", handler.ListImages)

		// Admin routes
		images.POST("", adminAuth, handler.UploadImage)
		images.PUT("/:image_id/primary", adminAuth, handler.SetPrimaryImage)
		images.DELETE("/:image_id", adminAuth, handler.DeleteImage)
	}
}
