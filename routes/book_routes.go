package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/longbourn/pemberley/controllers"
)

// initBookRoutes initializes the book CRUD routes
func initBookRoutes(router *gin.Engine, handler *controllers.BookHandler, adminAuth gin.HandlerFunc) {
	books := router.Group("/books")
	{
		// Public routes
		books.GET("", handler.ListBooks)
		books.GET("/:id", handler.GetBook)

		// Admin routes
		books.POST("", adminAuth, handler.CreateBook)
		books.PUT("/:id", adminAuth, handler.UpdateBook)
		books.DELETE("/:id", adminAuth, handler.DeleteBook)
	}
}
