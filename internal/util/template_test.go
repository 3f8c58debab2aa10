package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	t.Run("no markers", func(t *testing.T) {
		out, err := RenderTemplate("plain <text> & more", nil)
		require.NoError(t, err)
		assert.Equal(t, "plain <text> & more", out)
	})

	t.Run("substitutes without escaping", func(t *testing.T) {
		out, err := RenderTemplate("TASK: {{.task}}", map[string]any{"task": "compare <a> & 'b'"})
		require.NoError(t, err)
		assert.Equal(t, "TASK: compare <a> & 'b'", out)
	})

	t.Run("helpers", func(t *testing.T) {
		out, err := RenderTemplate(`{{default "none" .x}}|{{upper .y}}|{{join ", " .z}}`, map[string]any{
			"x": "",
			"y": "go",
			"z": []string{"a", "b"},
		})
		require.NoError(t, err)
		assert.Equal(t, "none|GO|a, b", out)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := RenderTemplate("{{.missing}}", map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "render template")
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := RenderTemplate("{{.task", map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse template")
	})
}
