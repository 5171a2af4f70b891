package rag

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

const (
	contextVar  = "context"
	questionVar = "question"
)

//go:embed prompts/answer.tmpl
var DefaultPrompt string

// Prompt renders the answer template. Both slots are substituted verbatim.
type Prompt struct {
	tmpl prompts.PromptTemplate
}

func NewPrompt(template string) (*Prompt, error) {
	for _, v := range []string{contextVar, questionVar} {
		if !strings.Contains(template, "{{."+v+"}}") {
			return nil, fmt.Errorf("prompt template is missing the %q slot", v)
		}
	}

	p := &Prompt{
		tmpl: prompts.NewPromptTemplate(template, []string{contextVar, questionVar}),
	}

	// catch parse errors at startup instead of on the first question
	if _, err := p.Render("", ""); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadPrompt returns the embedded template when path is empty.
func LoadPrompt(path string) (*Prompt, error) {
	if path == "" {
		return NewPrompt(DefaultPrompt)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt %s: %w", path, err)
	}
	return NewPrompt(string(data))
}

func (p *Prompt) Render(contextText, question string) (string, error) {
	out, err := p.tmpl.Format(map[string]any{
		contextVar:  contextText,
		questionVar: question,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return out, nil
}

// FormatContext joins chunk contents in retrieval order, separated by a
// blank line.
func FormatContext(chunks []DocChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, "\n\n")
}

var _ PromptRenderer = (*Prompt)(nil)
