package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/services"
)

// 5 Mo maximum, images uniquement
const maxUploadSize = 5 * 1024 * 1024

// POST /api/upload — champ multipart "image"
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez fournir une image"})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image trop volumineuse (5 Mo maximum)"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seules les images sont acceptées"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ouverture fichier"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture fichier"})
		return
	}
	if len(data) > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image trop volumineuse (5 Mo maximum)"})
		return
	}

	// Nom adressé par contenu : deux uploads identiques donnent le même objet
	sum := sha256.Sum256(data)
	objectName := fmt.Sprintf("%s%s", hex.EncodeToString(sum[:]), filepath.Ext(fileHeader.Filename))

	url, err := services.UploadBytes(c.Request.Context(), objectName, data, contentType)
	if err != nil {
		logger.Log.Errorw("échec upload image", "object", objectName, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stockage d'images indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "message": "Image uploadée"})
}
