package rag

import (
	"context"
	"fmt"
	"strings"

	wl "github.com/abadojack/whatlanggo"
	"go.uber.org/zap"

	"github.com/josinaldojr/leopard-cat-rag/internal/logging"
)

// answerTemperature is fixed; every generation call is greedy.
const answerTemperature float32 = 0

type Service struct {
	retriever Retriever
	prompt    PromptRenderer
	llm       LLMClient
	logger    *zap.Logger
}

func NewService(retriever Retriever, prompt PromptRenderer, llm LLMClient, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		prompt:    prompt,
		llm:       llm,
		logger:    logging.OrNop(logger),
	}
}

// Query answers a single question. It is the entry point for any caller that
// only needs the answer text.
func (s *Service) Query(ctx context.Context, question string) (string, error) {
	resp, err := s.Ask(ctx, AskRequest{Question: question})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (s *Service) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	q := req.Question

	chunks, err := s.retriever.Retrieve(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	s.logger.Debug("retrieved chunks", zap.Int("count", len(chunks)))

	prompt, err := s.prompt.Render(FormatContext(chunks), q)
	if err != nil {
		return nil, err
	}

	answer, err := s.llm.Generate(ctx, prompt, GenerateOptions{Temperature: answerTemperature})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	sources := make([]SourceRef, 0, len(chunks))
	for _, c := range chunks {
		sources = append(sources, SourceRef{
			ChunkID:   c.ID,
			Title:     c.Title,
			SourceURL: c.SourceURL,
			Distance:  c.Distance,
		})
	}

	return &AskResponse{
		Answer:  answer,
		Sources: sources,
		Lang:    detectLang(q),
	}, nil
}

func detectLang(s string) string {
	if s == "" {
		return ""
	}
	info := wl.Detect(s)
	switch info.Lang {
	case wl.Cmn:
		return "zh"
	case wl.Eng:
		return "en"
	case wl.Jpn:
		return "ja"
	case wl.Por:
		return "pt"
	default:
		return strings.ToLower(wl.LangToString(info.Lang))
	}
}
