package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {

	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{"paragraph", "Hola mundo", "<p>Hola mundo</p>"},
		{"heading", "# Título", "<h1>Título</h1>"},
		{"emphasis", "*texto*", "<em>texto</em>"},
		{"tab indented is not code", "\tuno", "<p>uno</p>"},
		{"raw html escaped", "<script>alert(1)</script>", "&lt;script&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Markdown(tt.src), tt.contains)
		})
	}
}

func TestMarkdownNoScriptTag(t *testing.T) {
	assert.NotContains(t, Markdown("<script>alert(1)</script>"), "<script>")
}
