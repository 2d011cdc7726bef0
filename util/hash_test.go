package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-passw0rd", hash)

	assert.NoError(t, VerifyPassword(hash, "s3cret-passw0rd"))
	assert.Error(t, VerifyPassword(hash, "wrong-password"))
}

func TestRandString(t *testing.T) {
	a := RandString(16)
	b := RandString(16)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
