package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("TestPass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "TestPass123!", hash)

	assert.True(t, CheckPassword(hash, "TestPass123!"))
	assert.False(t, CheckPassword(hash, "testpass123!"))
	assert.False(t, CheckPassword("not-a-hash", "TestPass123!"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
