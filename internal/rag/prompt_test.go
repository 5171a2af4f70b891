package rag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPromptRender(t *testing.T) {
	p, err := LoadPrompt("")
	require.NoError(t, err)

	out, err := p.Render("石虎夜行性。", "石虎白天會出來嗎？")
	require.NoError(t, err)

	assert.Contains(t, out, "你是一位台灣石虎保育專家")
	assert.Contains(t, out, "資訊：\n石虎夜行性。\n")
	assert.Contains(t, out, "問題：\n石虎白天會出來嗎？")
}

func TestPromptDoesNotInterpretValues(t *testing.T) {
	p, err := NewPrompt(DefaultPrompt)
	require.NoError(t, err)

	out, err := p.Render("<b>石虎 & 食蟹獴</b>", "{question}")
	require.NoError(t, err)

	assert.Contains(t, out, "<b>石虎 & 食蟹獴</b>")
	assert.Contains(t, out, "問題：\n{question}")
}

func TestNewPromptRequiresBothSlots(t *testing.T) {
	_, err := NewPrompt("Question: {{.question}}")
	assert.Error(t, err)

	_, err = NewPrompt("Context: {{.context}}")
	assert.Error(t, err)
}

func TestNewPromptInvalidTemplate(t *testing.T) {
	_, err := NewPrompt("{{.context}} {{.question}} {{if}}")
	assert.Error(t, err)
}

func TestLoadPromptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("C={{.context}};Q={{.question}}"), 0o600))

	p, err := LoadPrompt(path)
	require.NoError(t, err)

	out, err := p.Render("ctx", "q")
	require.NoError(t, err)
	assert.Equal(t, "C=ctx;Q=q", out)
}

func TestLoadPromptMissingFile(t *testing.T) {
	_, err := LoadPrompt(filepath.Join(t.TempDir(), "nope.tmpl"))
	assert.Error(t, err)
}

func TestFormatContext(t *testing.T) {
	assert.Equal(t, "", FormatContext(nil))
	assert.Equal(t, "a", FormatContext([]DocChunk{{Content: "a"}}))
	assert.Equal(t, "b\n\na\n\nb", FormatContext([]DocChunk{{Content: "b"}, {Content: "a"}, {Content: "b"}}))
}
