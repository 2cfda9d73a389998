package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/database"
	"brocante_back_end/internal/middleware"
	"brocante_back_end/internal/store"
)

// GET /api/products/notifications — consulter la liste marque tout comme lu
func GetNotifications(c *gin.Context) {
	notifications, err := store.ListAndMarkRead(c.Request.Context(), database.DB, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}
