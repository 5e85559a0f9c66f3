package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesEveryPage(t *testing.T) {
	e := New()
	require.NoError(t, e.Load())

	for _, name := range []string{
		"index", "home", "register", "login", "logout", "profile",
		"create_post", "view_post", "confirm_delete",
		"pass_reset_query", "reset_pass", "error",
	} {
		assert.Contains(t, e.templates, name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	e := New()
	require.NoError(t, e.Load())

	var buf bytes.Buffer
	assert.Error(t, e.Render(&buf, "does-not-exist", nil))
}

func TestRenderErrorPage(t *testing.T) {
	e := New()
	require.NoError(t, e.Load())

	var buf bytes.Buffer
	err := e.Render(&buf, "error", map[string]interface{}{
		"Status":  404,
		"Message": "post not found",
		"Flashes": nil,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "404")
	assert.Contains(t, buf.String(), "post not found")
}
