package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret-one", 720*time.Hour)

	token, exp, err := m.GenerateToken("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), exp, time.Minute)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestJWTWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)
	other := NewJWTManager("secret-two", time.Hour)

	token, _, err := m.GenerateToken("user-42")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret-one", -time.Minute)

	token, _, err := m.GenerateToken("user-42")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Error(t, err)
}
