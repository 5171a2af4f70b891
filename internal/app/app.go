package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/josinaldojr/leopard-cat-rag/internal/config"
	"github.com/josinaldojr/leopard-cat-rag/internal/db"
	"github.com/josinaldojr/leopard-cat-rag/internal/llm"
	"github.com/josinaldojr/leopard-cat-rag/internal/logging"
	"github.com/josinaldojr/leopard-cat-rag/internal/rag"
)

// App holds the process-scoped, read-only pieces of the pipeline.
type App struct {
	Service *rag.Service
	closers []func()
}

// New opens the index and builds the model clients. An index that cannot be
// opened is an error here; a missing credential is not.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	a := &App{}

	repo, err := a.openIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}

	embeddings, err := llm.NewEmbeddingsClient(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init embeddings: %w", err)
	}

	generator, err := llm.NewLLMClient(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init llm: %w", err)
	}

	prompt, err := rag.LoadPrompt(cfg.PromptFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	retriever := rag.NewVectorRetriever(embeddings, repo, cfg.TopK)
	a.Service = rag.NewService(retriever, prompt, generator, logger)

	logger.Info("pipeline ready",
		zap.String("index", cfg.IndexBackend),
		zap.String("llm", cfg.LLMProvider),
		zap.String("embeddings", cfg.EmbeddingProvider),
		zap.Int("topK", cfg.TopK),
		zap.Bool("hfToken", cfg.HFToken != ""),
	)

	return a, nil
}

func (a *App) openIndex(ctx context.Context, cfg *config.Config) (rag.Repository, error) {
	switch cfg.IndexBackend {
	case config.BackendBadger:
		repo, err := rag.OpenBadgerRepository(cfg.IndexDir)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = repo.Close() })
		return repo, nil
	case config.BackendPgvector:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		return rag.NewPgRepository(pool), nil
	default:
		return nil, fmt.Errorf("unknown INDEX_BACKEND %q", cfg.IndexBackend)
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
