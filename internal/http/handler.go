package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/josinaldojr/leopard-cat-rag/internal/logging"
	"github.com/josinaldojr/leopard-cat-rag/internal/metrics"
	"github.com/josinaldojr/leopard-cat-rag/internal/rag"
)

type Handler struct {
	ragService *rag.Service
	metrics    *metrics.Metrics
	logger     *zap.Logger
	timeout    time.Duration
}

func NewHandler(ragService *rag.Service, m *metrics.Metrics, logger *zap.Logger, timeout time.Duration) *Handler {
	return &Handler{
		ragService: ragService,
		metrics:    m,
		logger:     logging.OrNop(logger),
		timeout:    timeout,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req rag.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := h.ragService.Ask(ctx, req)
	if h.metrics != nil {
		h.metrics.ObserveAsk(start, err)
	}
	if err != nil {
		h.logger.Error("ask failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("ask answered",
		zap.String("lang", resp.Lang),
		zap.Int("sources", len(resp.Sources)),
		zap.Duration("elapsed", time.Since(start)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
