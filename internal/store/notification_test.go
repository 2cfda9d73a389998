package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brocante_back_end/internal/store"
)

func TestListAndMarkReadFlipsUnreadOnFetch(t *testing.T) {
	db := setupDB(t)
	seller := createUser(t, db, "bruno")

	for _, msg := range []string{"première vente", "deuxième vente"} {
		_, err := db.Exec("INSERT INTO notifications (user_id, message) VALUES (?, ?)", seller, msg)
		require.NoError(t, err)
	}

	// Première consultation : tout est non lu
	notifs, err := store.ListAndMarkRead(ctx, db, seller)
	require.NoError(t, err)
	require.Len(t, notifs, 2)
	for _, n := range notifs {
		assert.False(t, n.IsRead)
	}

	// Seconde consultation : la première a valu lecture
	notifs, err = store.ListAndMarkRead(ctx, db, seller)
	require.NoError(t, err)
	require.Len(t, notifs, 2)
	for _, n := range notifs {
		assert.True(t, n.IsRead)
	}
}

func TestListAndMarkReadScopedToRecipient(t *testing.T) {
	db := setupDB(t)
	bruno := createUser(t, db, "bruno")
	chloe := createUser(t, db, "chloe")

	_, err := db.Exec("INSERT INTO notifications (user_id, message) VALUES (?, ?)", bruno, "vente lampe")
	require.NoError(t, err)

	notifs, err := store.ListAndMarkRead(ctx, db, chloe)
	require.NoError(t, err)
	assert.Empty(t, notifs)

	// La consultation de Chloé n'a pas marqué celle de Bruno
	notifs, err = store.ListAndMarkRead(ctx, db, bruno)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.False(t, notifs[0].IsRead)
}
