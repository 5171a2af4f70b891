package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/josinaldojr/leopard-cat-rag/internal/rag"
)

const (
	defaultGeminiEmbeddingModel = "text-embedding-004"
	defaultGeminiChatModel      = "gemini-2.5-flash"
)

type GeminiClient struct {
	client         *genai.Client
	chatModel      string
	embeddingModel string
}

type GeminiConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	// BaseURL overrides the API endpoint; empty means the public one.
	BaseURL string
}

// NewGeminiClient builds the client eagerly when a key is present. Without one
// it returns a client whose calls fail with ErrMissingCredential.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	g := &GeminiClient{
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
	}
	if g.chatModel == "" {
		g.chatModel = defaultGeminiChatModel
	}
	if g.embeddingModel == "" {
		g.embeddingModel = defaultGeminiEmbeddingModel
	}
	if cfg.APIKey == "" {
		return g, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g.client = c

	return g, nil
}

func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini embed: %w", ErrMissingCredential)
	}

	resp, err := g.client.Models.EmbedContent(
		ctx,
		g.embeddingModel,
		genai.Text(text),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed error: %w", err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	values := resp.Embeddings[0].Values
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string, opts rag.GenerateOptions) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini generate: %w", ErrMissingCredential)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.chatModel,
		genai.Text(prompt),
		cfg,
	)
	if err != nil {
		return "", fmt.Errorf("gemini generateContent error: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	// first candidate's text, returned as-is even when empty
	return resp.Text(), nil
}

var _ rag.EmbeddingsClient = (*GeminiClient)(nil)
var _ rag.LLMClient = (*GeminiClient)(nil)
