package main

import (
	"log"

	"github.com/longbourn/pemberley/config"
	"github.com/longbourn/pemberley/identity"
	"github.com/longbourn/pemberley/routes"
	"github.com/longbourn/pemberley/storage"
	"github.com/longbourn/pemberley/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Error initializing database: %v", err)
		log.Fatal("Error initializing database:", err)
	}

	// External collaborators
	authClient := identity.NewClient(cfg.SupabaseURL, cfg.ServiceRoleKey)
	coverStore := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.ServiceRoleKey, cfg.StorageBucket)

	// Set up router
	router := routes.SetupRouter(cfg, db, coverStore, authClient)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
