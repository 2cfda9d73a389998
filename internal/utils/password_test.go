package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", hash)

	assert.True(t, VerifyPassword("motdepasse", hash))
	assert.False(t, VerifyPassword("mauvais", hash))
	assert.False(t, VerifyPassword("motdepasse", "pas-un-hash"))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("motdepasse")
	require.NoError(t, err)
	h2, err := HashPassword("motdepasse")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
