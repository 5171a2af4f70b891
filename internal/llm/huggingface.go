package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/sashabaranov/go-openai"
	hfembeddings "github.com/tmc/langchaingo/embeddings/huggingface"
	"github.com/tmc/langchaingo/llms/huggingface"
	"go.uber.org/zap"

	"github.com/josinaldojr/leopard-cat-rag/internal/logging"
	"github.com/josinaldojr/leopard-cat-rag/internal/rag"
)

// ErrMissingCredential is returned by every remote call made without an API
// token. Clients are still constructed so the process can start.
var ErrMissingCredential = errors.New("missing API credential")

const featureExtractionTask = "feature-extraction"

// HFChatClient talks to the Hugging Face router through its
// OpenAI-compatible chat completions API.
type HFChatClient struct {
	client *openai.Client
	model  string
	token  string
	logger *zap.Logger
}

type HFChatConfig struct {
	Token   string
	Model   string
	BaseURL string
	Logger  *zap.Logger
}

func NewHFChatClient(cfg HFChatConfig) *HFChatClient {
	logger := logging.OrNop(cfg.Logger)

	config := openai.DefaultConfig(cfg.Token)
	config.BaseURL = cfg.BaseURL
	config.HTTPClient = &http.Client{
		Transport: &loggingTransport{
			base:   http.DefaultTransport,
			logger: logger,
		},
	}

	return &HFChatClient{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		token:  cfg.Token,
		logger: logger,
	}
}

func (c *HFChatClient) Generate(ctx context.Context, prompt string, opts rag.GenerateOptions) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("huggingface chat: %w", ErrMissingCredential)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: wireTemperature(opts.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	c.logger.Debug("chat completion",
		zap.String("model", c.model),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
	)

	// primary text field, returned as-is even when empty
	return resp.Choices[0].Message.Content, nil
}

// wireTemperature maps 0 to the smallest positive float32: go-openai omits a
// zero temperature from the request body, which lets the server pick its own
// default.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// HFEmbeddings embeds text with a sentence-transformers model on the Hugging
// Face inference API.
type HFEmbeddings struct {
	embedder *hfembeddings.Huggingface
}

type HFEmbeddingsConfig struct {
	Token string
	Model string
	URL   string
}

func NewHFEmbeddings(cfg HFEmbeddingsConfig) (*HFEmbeddings, error) {
	if cfg.Token == "" {
		return &HFEmbeddings{}, nil
	}

	client, err := huggingface.New(
		huggingface.WithToken(cfg.Token),
		huggingface.WithModel(cfg.Model),
		huggingface.WithURL(cfg.URL),
	)
	if err != nil {
		return nil, fmt.Errorf("create huggingface client: %w", err)
	}

	embedder, err := hfembeddings.NewHuggingface(
		hfembeddings.WithClient(*client),
		hfembeddings.WithModel(cfg.Model),
		hfembeddings.WithTask(featureExtractionTask),
	)
	if err != nil {
		return nil, fmt.Errorf("create huggingface embedder: %w", err)
	}

	return &HFEmbeddings{embedder: embedder}, nil
}

func (e *HFEmbeddings) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.embedder == nil {
		return nil, fmt.Errorf("huggingface embeddings: %w", ErrMissingCredential)
	}

	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("huggingface embed error: %w", err)
	}
	return vec, nil
}

var _ rag.LLMClient = (*HFChatClient)(nil)
var _ rag.EmbeddingsClient = (*HFEmbeddings)(nil)
