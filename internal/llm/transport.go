package llm

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// loggingTransport logs each outbound model request at debug level. Bodies
// are not logged; prompts carry the retrieved context and can be large.
type loggingTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int64("requestBytes", req.ContentLength),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		t.logger.Debug("model request failed", append(fields, zap.Error(err))...)
		return resp, err
	}

	t.logger.Debug("model request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}
