package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josinaldojr/leopard-cat-rag/internal/metrics"
	"github.com/josinaldojr/leopard-cat-rag/internal/rag"
)

type fixedRetriever []rag.DocChunk

func (f fixedRetriever) Retrieve(context.Context, string) ([]rag.DocChunk, error) {
	return f, nil
}

type fixedLLM struct {
	answer string
	err    error
}

func (f fixedLLM) Generate(context.Context, string, rag.GenerateOptions) (string, error) {
	return f.answer, f.err
}

func newTestRouter(t *testing.T, llm rag.LLMClient) http.Handler {
	t.Helper()

	prompt, err := rag.NewPrompt(rag.DefaultPrompt)
	require.NoError(t, err)

	svc := rag.NewService(
		fixedRetriever{{ID: "1", Title: "分布", Content: "石虎分布於苗栗。"}},
		prompt,
		llm,
		nil,
	)

	reg := prometheus.NewRegistry()
	h := NewHandler(svc, metrics.New(reg), nil, time.Second)
	return NewRouter(h, reg)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, fixedLLM{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAsk(t *testing.T) {
	router := newTestRouter(t, fixedLLM{answer: "石虎主要分布於苗栗、台中與南投。"})

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"question":"石虎分布在哪裡？"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ask", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp rag.AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "石虎主要分布於苗栗、台中與南投。", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "1", resp.Sources[0].ChunkID)
}

func TestAskEmptyQuestion(t *testing.T) {
	router := newTestRouter(t, fixedLLM{answer: "請提供問題。"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":""}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAskInvalidJSON(t *testing.T) {
	router := newTestRouter(t, fixedLLM{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskModelFailure(t *testing.T) {
	router := newTestRouter(t, fixedLLM{err: errors.New("rate limited")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"q"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limited")
}

func TestAskWrongMethod(t *testing.T) {
	router := newTestRouter(t, fixedLLM{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ask", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, fixedLLM{answer: "a"})

	router.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"q"}`)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rag_ask_requests_total{status="ok"} 1`)
}
