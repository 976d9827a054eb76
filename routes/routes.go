package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/longbourn/pemberley/config"
	"github.com/longbourn/pemberley/controllers"
	"github.com/longbourn/pemberley/middleware"
	"github.com/longbourn/pemberley/storage"
	"github.com/longbourn/pemberley/utils"
)

// SetupRouter initializes and returns the Gin router with all routes. The
// database, cover store, and token validator are passed in by the caller.
func SetupRouter(cfg *config.Config, db *gorm.DB, store storage.CoverStore, validator middleware.TokenValidator) *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.CORSMiddleware(cfg.FrontendURL))
	router.Use(utils.SecurityHeadersMiddleware())

	bookHandler := controllers.NewBookHandler(db, store)
	imageHandler := controllers.NewImageHandler(db, store)
	adminAuth := middleware.AdminAuthMiddleware(validator)

	initBookRoutes(router, bookHandler, adminAuth)
	initBookImageRoutes(router, imageHandler, adminAuth)

	router.GET("/health", controllers.Health)

	return router
}
