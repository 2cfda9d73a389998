package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	aliceToken, _ := app.signup(t, "alice", "motdepasse")
	_, brunoID := app.signup(t, "bruno", "motdepasse")
	p := app.seedProduct(t, brunoID, "Buffet parisien", 120)

	w := app.do(t, http.MethodPost, "/api/products/purchase", aliceToken, gin.H{
		"items": []gin.H{{"product_id": p, "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.NotZero(t, body["orderId"])

	// L'article vient d'être vendu
	w = app.do(t, http.MethodPost, "/api/products/purchase", aliceToken, gin.H{
		"items": []gin.H{{"product_id": p, "quantity": 1}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/products/purchase", aliceToken, gin.H{
		"items": []gin.H{{"product_id": 9999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPost, "/api/products/purchase", aliceToken, gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartFlowEndToEnd(t *testing.T) {
	app := newTestApp(t, nil)
	aliceToken, _ := app.signup(t, "alice", "motdepasse")
	brunoToken, brunoID := app.signup(t, "bruno", "motdepasse")
	p := app.seedProduct(t, brunoID, "Service à thé", 25)

	// Bruno ne peut pas mettre son propre article au panier
	w := app.do(t, http.MethodPost, "/api/products/cart/add", brunoToken, gin.H{"product_id": p})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/products/cart/add", aliceToken, gin.H{"product_id": p, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/products/cart", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Service à thé")

	var cartID int64
	require.NoError(t, app.db.QueryRow("SELECT cart_id FROM shopping_cart").Scan(&cartID))

	w = app.do(t, http.MethodPost, "/api/products/cart/purchase", aliceToken, gin.H{"cart_ids": []int64{cartID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Panier vidé, commande visible, vendeur notifié
	var n int
	require.NoError(t, app.db.QueryRow("SELECT COUNT(*) FROM shopping_cart").Scan(&n))
	assert.Zero(t, n)

	w = app.do(t, http.MethodGet, "/api/orders", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Service à thé")
	assert.Contains(t, w.Body.String(), "unpaid")

	w = app.do(t, http.MethodGet, "/api/products/notifications", brunoToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), "Service à thé")
}
