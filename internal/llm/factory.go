package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/josinaldojr/leopard-cat-rag/internal/config"
	"github.com/josinaldojr/leopard-cat-rag/internal/rag"
)

func NewLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (rag.LLMClient, error) {
	switch cfg.LLMProvider {
	case config.ProviderHuggingFace:
		return NewHFChatClient(HFChatConfig{
			Token:   cfg.HFToken,
			Model:   cfg.ChatModel,
			BaseURL: cfg.HFChatURL,
			Logger:  logger,
		}), nil
	case config.ProviderGemini:
		g, err := NewGeminiClient(ctx, GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			ChatModel: geminiModel(cfg.ChatModel, defaultGeminiChatModel),
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func NewEmbeddingsClient(ctx context.Context, cfg *config.Config) (rag.EmbeddingsClient, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderHuggingFace:
		e, err := NewHFEmbeddings(HFEmbeddingsConfig{
			Token: cfg.HFToken,
			Model: cfg.EmbeddingModel,
			URL:   cfg.HFInferenceURL,
		})
		if err != nil {
			return nil, err
		}
		return e, nil
	case config.ProviderGemini:
		g, err := NewGeminiClient(ctx, GeminiConfig{
			APIKey:         cfg.GeminiAPIKey,
			EmbeddingModel: geminiModel(cfg.EmbeddingModel, defaultGeminiEmbeddingModel),
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown EMBEDDING_PROVIDER %q", cfg.EmbeddingProvider)
	}
}

// geminiModel ignores the Hugging Face repo ids that config defaults to.
func geminiModel(configured, def string) string {
	if configured == "" || strings.Contains(configured, "/") {
		return def
	}
	return configured
}
