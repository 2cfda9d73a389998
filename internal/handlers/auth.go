package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/database"
	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/middleware"
	"brocante_back_end/internal/store"
	"brocante_back_end/internal/utils"
)

// POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom d'utilisateur et le mot de passe sont obligatoires"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// L'unicité du nom est tranchée par la contrainte en base
	userID, err := store.CreateUser(c.Request.Context(), database.DB, input.Username, hash)
	if errors.Is(err, store.ErrDuplicateUser) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom d'utilisateur déjà utilisé"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	logger.Log.Infow("utilisateur créé", "user_id", userID, "username", input.Username)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Inscription réussie"})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nom d'utilisateur et le mot de passe sont obligatoires"})
		return
	}

	user, err := store.GetUserByUsername(c.Request.Context(), database.DB, input.Username)
	if err != nil || !utils.VerifyPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Nom d'utilisateur ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		logger.Log.Errorw("échec génération token", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "username": user.Username})
}

// POST /api/auth/change-password
func ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe invalide"})
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	user, err := store.GetUserByID(ctx, database.DB, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if !utils.VerifyPassword(input.CurrentPassword, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe actuel incorrect"})
		return
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := store.UpdatePassword(ctx, database.DB, userID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour mot de passe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe modifié avec succès"})
}
