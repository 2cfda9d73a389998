package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/database"
	"brocante_back_end/internal/middleware"
	"brocante_back_end/internal/store"
)

// GET /api/products/cart
func GetCart(c *gin.Context) {
	items, err := store.ListCart(c.Request.Context(), database.DB, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération panier"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/products/cart/add
func AddToCart(c *gin.Context) {
	var input struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article invalide"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	err := store.AddToCart(c.Request.Context(), database.DB, middleware.UserID(c), input.ProductID, input.Quantity)
	switch {
	case errors.Is(err, store.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
	case errors.Is(err, store.ErrOwnProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible d'ajouter son propre article au panier"})
	case errors.Is(err, store.ErrProductSold):
		c.JSON(http.StatusConflict, gin.H{"error": "Article déjà vendu"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout au panier"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Ajouté au panier"})
	}
}

// PUT /api/products/cart/:cart_id
func UpdateCartEntry(c *gin.Context) {
	cartID, err := strconv.ParseInt(c.Param("cart_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	err = store.UpdateCartEntry(c.Request.Context(), database.DB, middleware.UserID(c), cartID, input.Quantity)
	switch {
	case errors.Is(err, store.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Panier mis à jour"})
	}
}

// DELETE /api/products/cart/:cart_id
func RemoveCartEntry(c *gin.Context) {
	cartID, err := strconv.ParseInt(c.Param("cart_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	err = store.RemoveCartEntry(c.Request.Context(), database.DB, middleware.UserID(c), cartID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression ligne panier"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Ligne supprimée"})
	}
}
