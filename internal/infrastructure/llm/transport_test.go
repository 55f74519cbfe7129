package llm

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentsage/contentsage-api/pkg/logger"
)

func TestLoggingTransport(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write([]byte("echo:" + string(body)))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "debug", "text")
	t.Cleanup(func() { logger.InitWithWriter(io.Discard, "info", "text") })

	tests := []struct {
		name    string
		debug   bool
		wantLog bool
	}{
		{"debug logs bodies", true, true},
		{"quiet passes through", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			hc := &http.Client{Transport: &LoggingTransport{Debug: tt.debug}}

			resp, err := hc.Post(ts.URL, "application/json", strings.NewReader(`{"prompt":"hi"}`))
			require.NoError(t, err)
			defer resp.Body.Close()

			// The body must still be readable after logging.
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, `echo:{"prompt":"hi"}`, string(body))

			assert.Equal(t, tt.wantLog, strings.Contains(buf.String(), "outbound response"))
		})
	}
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip([]byte("short")))
	long := bytes.Repeat([]byte("a"), maxLoggedBody+10)
	assert.True(t, strings.HasSuffix(clip(long), "...(truncated)"))
	assert.Len(t, clip(long), maxLoggedBody+len("...(truncated)"))
}
