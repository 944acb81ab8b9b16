package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw1secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotContains(t, hash, "pw1secret")

	assert.True(t, CompareHashAndPassword(hash, "pw1secret"))
	assert.False(t, CompareHashAndPassword(hash, "pw2secret"))
	assert.False(t, CompareHashAndPassword("", "pw1secret"))
}
