package llm

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/contentsage/contentsage-api/pkg/logger"
)

// maxLoggedBody caps how much of a body is logged. Prompts and completions
// can be long.
const maxLoggedBody = 2048

// LoggingTransport is an http.RoundTripper that logs outbound backend calls.
// Bodies are only read and logged when Debug is set.
type LoggingTransport struct {
	Base  http.RoundTripper
	Debug bool
}

func (t *LoggingTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.Debug {
		return t.base().RoundTrip(req)
	}

	log := logger.Component(req.Context(), "llm")

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}
	log.Debug("outbound request", "method", req.Method, "url", req.URL.Redacted(), "body", clip(reqBody))

	start := time.Now()
	resp, err := t.base().RoundTrip(req)
	if err != nil {
		log.Debug("outbound request failed", "url", req.URL.Redacted(), "error", err)
		return resp, err
	}

	respBody, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	log.Debug("outbound response", "status", resp.StatusCode, "url", req.URL.Redacted(),
		"elapsed", time.Since(start), "body", clip(respBody))
	return resp, nil
}

func clip(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
