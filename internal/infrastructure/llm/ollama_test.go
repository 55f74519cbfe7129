package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

func TestOllamaClient_Generate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.Prompt != "test prompt" {
			t.Errorf("Expected test prompt, got %s", req.Prompt)
		}
		if !req.Raw || req.Stream {
			t.Errorf("expected raw non-streaming request, got raw=%v stream=%v", req.Raw, req.Stream)
		}
		if req.Options == nil || req.Options.NumPredict != 200 || req.Options.TopK != 50 {
			t.Errorf("unexpected options: %+v", req.Options)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Response:        "mocked response",
			PromptEvalCount: 12,
			EvalCount:       34,
		})
	}))
	defer ts.Close()

	client := NewOllamaClient(ts.URL, "test-model")

	resp, err := client.Generate(context.Background(), "test prompt", content.LocalParams(content.KindProduct))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Text != "mocked response" {
		t.Errorf("Expected mocked response, got %s", resp.Text)
	}
	if resp.PromptTokens != 12 || resp.OutputTokens != 34 {
		t.Errorf("unexpected token counts: %+v", resp)
	}
	if client.Name() != "Ollama (test-model) [Local]" {
		t.Errorf("Unexpected name: %s", client.Name())
	}
}

func TestOllamaClient_Generate_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}))
	defer ts.Close()

	client := NewOllamaClient(ts.URL, "")

	_, err := client.Generate(context.Background(), "test prompt", content.Params{})
	if err == nil {
		t.Fatalf("Expected error, got nil")
	}
	if err.Error() != "ollama returned error status 500: internal error" {
		t.Errorf("Unexpected error messaging: %v", err)
	}
}

func TestOllamaClient_Generate_ModelNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewOllamaClient(ts.URL, "missing").Generate(context.Background(), "p", content.Params{})
	if !errors.Is(err, content.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestOllamaClient_Generate_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer ts.Close()

	client := NewOllamaClient(ts.URL, "")

	_, err := client.Generate(context.Background(), "test prompt", content.Params{})
	if err == nil {
		t.Fatalf("Expected error, got nil")
	}
}

func TestOllamaClient_ConnectionError(t *testing.T) {
	client := NewOllamaClient("http://localhost:1", "model")

	_, err := client.Generate(context.Background(), "test prompt", content.Params{})
	if err == nil {
		t.Fatal("Expected connection error, got nil")
	}
}

func TestOllamaClient_Defaults(t *testing.T) {
	client := NewOllamaClient("", "")
	if client.host != "http://localhost:11434" {
		t.Errorf("expected default host, got %s", client.host)
	}
	if client.model != "llama3.2" {
		t.Errorf("expected default model, got %s", client.model)
	}
	if client.keepAlive != DefaultKeepAlive {
		t.Errorf("expected default keep_alive, got %s", client.keepAlive)
	}
}

func TestOllamaClient_LoadUnload(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []map[string]any
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["path"] = r.URL.Path
		mu.Lock()
		seen = append(seen, body)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"done":true}`))
	}))
	defer ts.Close()

	client := NewOllamaClient(ts.URL, "qwen2.5:1.5b", WithPullOnLoad(true))
	ctx := context.Background()

	if err := client.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := client.Unload(ctx); err != nil {
		t.Fatalf("Unload: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("expected pull, load and unload requests, got %d", len(seen))
	}
	if seen[0]["path"] != "/api/pull" || seen[0]["model"] != "qwen2.5:1.5b" {
		t.Errorf("unexpected pull request: %v", seen[0])
	}
	if seen[1]["keep_alive"] != "30m" {
		t.Errorf("expected load keep_alive 30m, got %v", seen[1]["keep_alive"])
	}
	if _, hasPrompt := seen[1]["prompt"]; hasPrompt {
		t.Errorf("load request should carry no prompt: %v", seen[1])
	}
	if ka, ok := seen[2]["keep_alive"].(float64); !ok || ka != 0 {
		t.Errorf("expected unload keep_alive 0, got %v", seen[2]["keep_alive"])
	}
}

func TestOllamaClient_Ping(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:3b","model":"llama3.2:3b"},{"name":"mistral:latest","model":"mistral:latest"}]}`))
	}))
	defer ts.Close()

	tests := []struct {
		name    string
		model   string
		pull    bool
		wantErr bool
	}{
		{"exact tag", "llama3.2:3b", false, false},
		{"implicit latest", "mistral", false, false},
		{"not pulled", "gemma2:2b", false, true},
		{"pull on load skips check", "gemma2:2b", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewOllamaClient(ts.URL, tt.model, WithPullOnLoad(tt.pull)).Ping(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Ping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, content.ErrBackendUnavailable) {
				t.Errorf("expected ErrBackendUnavailable, got %v", err)
			}
		})
	}
}

func TestOllamaClient_PingUnreachable(t *testing.T) {
	err := NewOllamaClient("http://localhost:1", "model").Ping(context.Background())
	if !errors.Is(err, content.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}
