package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice", "password": "motdepasse"})
	require.Equal(t, http.StatusOK, w.Code)

	// Nom déjà pris
	w = app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice", "password": "autre"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Champs manquants
	w = app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"username": "", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "motdepasse"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "alice", body["username"])

	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "mauvais"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "inconnue", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginResponseHidesPasswordHash(t *testing.T) {
	app := newTestApp(t, nil)
	app.signup(t, "alice", "motdepasse")

	w := app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "motdepasse"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestChangePassword(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.signup(t, "alice", "ancien-mdp")

	// Sans token
	w := app.do(t, http.MethodPost, "/api/auth/change-password", "", gin.H{"currentPassword": "ancien-mdp", "newPassword": "nouveau-mdp"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Mauvais mot de passe actuel
	w = app.do(t, http.MethodPost, "/api/auth/change-password", token, gin.H{"currentPassword": "faux", "newPassword": "nouveau-mdp"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/change-password", token, gin.H{"currentPassword": "ancien-mdp", "newPassword": "nouveau-mdp"})
	require.Equal(t, http.StatusOK, w.Code)

	// L'ancien mot de passe ne passe plus, le nouveau oui
	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "ancien-mdp"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "nouveau-mdp"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/orders", "n'importe-quoi", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
