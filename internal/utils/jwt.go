package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"brocante_back_end/internal/models"
)

// GenerateJWT signe un token HS256 valable 24h pour l'utilisateur donné
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
