package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/config"
	"brocante_back_end/internal/database"
	"brocante_back_end/internal/handlers"
	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/routes"
	"brocante_back_end/internal/services"
)

func main() {
	config.Load()
	logger.Init()
	defer logger.Sync()

	if err := database.ConnectDatabases(); err != nil {
		log.Fatalf("❌ Impossible de se connecter aux bases : %v", err)
	}
	if err := database.InitSchema(database.DB); err != nil {
		log.Fatalf("❌ Impossible d'initialiser le schéma : %v", err)
	}

	moderation := services.NewModerationClient()
	health := services.NewHealthChecker(database.RedisClient, moderation)
	products := handlers.NewProductHandler(moderation, health)

	r := gin.Default()
	routes.RegisterRoutes(r, products)

	port := config.Get("PORT", "3000")
	logger.Log.Infow("🚀 Serveur brocante lancé", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Serveur arrêté : %v", err)
	}
}
