package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brocante_back_end/internal/models"
	"brocante_back_end/internal/store"
)

func TestCreateAndGetProduct(t *testing.T) {
	db := setupDB(t)
	seller := createUser(t, db, "bruno")

	id, err := store.CreateProduct(ctx, db, models.Product{
		Name:        "Secrétaire en noyer",
		Price:       230,
		Description: "Début XXe, bon état",
		ImageURL:    "http://localhost:9000/brocante-images/abc.jpg",
		CreatedBy:   seller,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	p, err := store.GetProduct(ctx, db, id)
	require.NoError(t, err)
	assert.Equal(t, "Secrétaire en noyer", p.Name)
	assert.Equal(t, models.ProductAvailable, p.Status)
	assert.Equal(t, seller, p.CreatedBy)

	_, err = store.GetProduct(ctx, db, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProductIsOwnerScoped(t *testing.T) {
	db := setupDB(t)
	bruno := createUser(t, db, "bruno")
	chloe := createUser(t, db, "chloe")
	id := createProduct(t, db, bruno, "Chaise bistrot", 25)

	err := store.UpdateProduct(ctx, db, chloe, models.Product{ID: id, Name: "Chaise volée", Price: 1})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, store.UpdateProduct(ctx, db, bruno, models.Product{
		ID: id, Name: "Chaise bistrot rénovée", Price: 35, Description: "repeinte", ImageURL: "",
	}))

	p, err := store.GetProduct(ctx, db, id)
	require.NoError(t, err)
	assert.Equal(t, "Chaise bistrot rénovée", p.Name)
	assert.InDelta(t, 35, p.Price, 0.001)
}

func TestDeleteProductIsOwnerScoped(t *testing.T) {
	db := setupDB(t)
	bruno := createUser(t, db, "bruno")
	chloe := createUser(t, db, "chloe")
	id := createProduct(t, db, bruno, "Porte-manteau", 10)

	assert.ErrorIs(t, store.DeleteProduct(ctx, db, chloe, id), store.ErrNotFound)

	require.NoError(t, store.DeleteProduct(ctx, db, bruno, id))
	_, err := store.GetProduct(ctx, db, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListOthersExcludesOwnAndSold(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bruno := createUser(t, db, "bruno")

	mine := createProduct(t, db, alice, "Mon étagère", 40)
	available := createProduct(t, db, bruno, "Bureau d'écolier", 80)
	sold := createProduct(t, db, bruno, "Table basse", 45)
	_, err := db.Exec("UPDATE products SET status = ? WHERE product_id = ?", models.ProductSold, sold)
	require.NoError(t, err)

	products, err := store.ListOthers(ctx, db, alice)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, available, products[0].ID)
	assert.Equal(t, "bruno", products[0].Seller)

	// Son propre catalogue liste tout, vendu compris
	own, err := store.ListByOwner(ctx, db, alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine, own[0].ID)

	brunos, err := store.ListByOwner(ctx, db, bruno)
	require.NoError(t, err)
	assert.Len(t, brunos, 2)
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bruno := createUser(t, db, "bruno")

	createProduct(t, db, bruno, "Lampe de chevet", 20)
	res, err := db.Exec(
		"INSERT INTO products (name, price, description, created_by) VALUES (?, ?, ?, ?)",
		"Applique murale", 18.0, "ancienne lampe à pétrole électrifiée", bruno)
	require.NoError(t, err)
	_, err = res.LastInsertId()
	require.NoError(t, err)

	found, err := store.SearchOthers(ctx, db, alice, "lampe")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = store.SearchOthers(ctx, db, alice, "pétrole")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Applique murale", found[0].Name)

	found, err = store.SearchOthers(ctx, db, alice, "introuvable")
	require.NoError(t, err)
	assert.Empty(t, found)

	// La recherche "mes annonces" reste cantonnée au propriétaire
	found, err = store.SearchByOwner(ctx, db, alice, "lampe")
	require.NoError(t, err)
	assert.Empty(t, found)
}
