package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/database"
	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/middleware"
	"brocante_back_end/internal/store"
)

// POST /api/products/purchase — achat direct d'une sélection d'articles
func Purchase(c *gin.Context) {
	var input struct {
		Items []store.PurchaseItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez sélectionner des articles"})
		return
	}

	orderID, err := store.Purchase(c.Request.Context(), database.DB, middleware.UserID(c), input.Items)
	respondPurchase(c, orderID, err)
}

// POST /api/products/cart/purchase — achat d'une sélection du panier
func PurchaseCart(c *gin.Context) {
	var input struct {
		CartIDs []int64 `json:"cart_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez sélectionner des articles"})
		return
	}

	orderID, err := store.PurchaseFromCart(c.Request.Context(), database.DB, middleware.UserID(c), input.CartIDs)
	respondPurchase(c, orderID, err)
}

// Traduction de la taxonomie du magasin vers les codes HTTP. Le détail est
// journalisé côté serveur, le client reçoit un échec d'achat.
func respondPurchase(c *gin.Context, orderID int64, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Achat réussi", "orderId": orderID})
	case errors.Is(err, store.ErrInvalidPurchase):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez sélectionner des articles"})
	case errors.Is(err, store.ErrBuyerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Achat échoué"})
	case errors.Is(err, store.ErrProductNotFound), errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
	case errors.Is(err, store.ErrProductSold):
		c.JSON(http.StatusConflict, gin.H{"error": "Un des articles vient d'être vendu"})
	default:
		logger.Log.Errorw("achat échoué", "buyer_id", middleware.UserID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Achat échoué"})
	}
}
