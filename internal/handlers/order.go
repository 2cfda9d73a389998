package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/database"
	"brocante_back_end/internal/middleware"
	"brocante_back_end/internal/store"
)

// GET /api/orders — historique de l'acheteur, lignes et vendeurs inclus
func GetOrders(c *gin.Context) {
	orders, err := store.ListOrdersByBuyer(c.Request.Context(), database.DB, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	c.JSON(http.StatusOK, orders)
}
