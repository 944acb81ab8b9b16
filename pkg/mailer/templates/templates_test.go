package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResetCode(t *testing.T) {
	subject, html, err := Render("reset_code", map[string]any{
		"Name":      "An",
		"Code":      "123456",
		"ExpiresAt": "2024-06-01T12:10:00Z",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "An")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("nope", nil)
	assert.Error(t, err)
}
