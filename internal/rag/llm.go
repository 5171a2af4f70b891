package rag

import "context"

type EmbeddingsClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type LLMClient interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// Retriever returns the stored chunks nearest to query, in the order the
// index ranks them.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]DocChunk, error)
}

type PromptRenderer interface {
	Render(contextText, question string) (string, error)
}
