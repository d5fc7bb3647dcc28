package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("S3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret-password", hashed)

	assert.True(t, CheckPassword(hashed, "S3cret-password"))
	assert.False(t, CheckPassword(hashed, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "S3cret-password"))
}

func TestHashPasswordProducesUniqueHashes(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}
