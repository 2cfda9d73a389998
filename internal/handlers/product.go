package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/database"
	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/middleware"
	"brocante_back_end/internal/models"
	"brocante_back_end/internal/services"
	"brocante_back_end/internal/store"
)

// ProductHandler porte les dépendances des écritures catalogue : le client
// de modération et l'état de santé injecté (pas de drapeau global).
type ProductHandler struct {
	Moderation *services.ModerationClient
	Health     *services.HealthChecker
}

func NewProductHandler(moderation *services.ModerationClient, health *services.HealthChecker) *ProductHandler {
	return &ProductHandler{Moderation: moderation, Health: health}
}

type productInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// GET /api/products — mes annonces, vendues comprises
func (h *ProductHandler) ListMine(c *gin.Context) {
	products, err := store.ListByOwner(c.Request.Context(), database.DB, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération annonces"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/my/search?q=
func (h *ProductHandler) SearchMine(c *gin.Context) {
	products, err := store.SearchByOwner(c.Request.Context(), database.DB, middleware.UserID(c), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/all — les annonces disponibles des autres utilisateurs
func (h *ProductHandler) ListAll(c *gin.Context) {
	products, err := store.ListOthers(c.Request.Context(), database.DB, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération annonces"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/all/search?q=
func (h *ProductHandler) SearchAll(c *gin.Context) {
	products, err := store.SearchOthers(c.Request.Context(), database.DB, middleware.UserID(c), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// POST /api/products — création, derrière la barrière de modération
func (h *ProductHandler) Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" || input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix positif obligatoires"})
		return
	}

	if !h.moderationGate(c, input.Name, input.Description, input.ImageURL) {
		return
	}

	userID := middleware.UserID(c)
	id, err := store.CreateProduct(c.Request.Context(), database.DB, models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedBy:   userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création annonce"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Annonce créée"})
}

// PUT /api/products/:id — mise à jour par le propriétaire, même barrière
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" || input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix positif obligatoires"})
		return
	}

	if !h.moderationGate(c, input.Name, input.Description, input.ImageURL) {
		return
	}

	err = store.UpdateProduct(c.Request.Context(), database.DB, middleware.UserID(c), models.Product{
		ID:          productID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour annonce"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annonce mise à jour"})
}

// DELETE /api/products/:id — suppression physique par le propriétaire
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	err = store.DeleteProduct(c.Request.Context(), database.DB, middleware.UserID(c), productID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression annonce"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annonce supprimée"})
}

// moderationGate bloque l'écriture si le service de modération est en panne
// ou si le contenu est refusé. Un échec du service n'est jamais un passage.
func (h *ProductHandler) moderationGate(c *gin.Context, name, description, imageURL string) bool {
	ctx := c.Request.Context()

	if !h.Health.Available(ctx) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service de modération temporairement indisponible, réessayez plus tard"})
		return false
	}

	result, err := h.Moderation.Moderate(ctx, name, description, imageURL)
	if err != nil {
		if errors.Is(err, services.ErrModerationUnavailable) || errors.Is(err, services.ErrModerationTimeout) {
			h.Health.MarkDown(ctx)
		}
		logger.Log.Warnw("modération en échec, écriture bloquée", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service de modération temporairement indisponible, réessayez plus tard"})
		return false
	}

	if !result.Passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contenu refusé : " + result.Reason})
		return false
	}
	return true
}
