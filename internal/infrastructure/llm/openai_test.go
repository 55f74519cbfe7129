package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

const chatCompletionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Fresh copy"}}],
  "usage": {"prompt_tokens": 9, "completion_tokens": 3, "total_tokens": 12}
}`

func TestOpenAIClient_Generate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["model"] != "gpt-4o-mini" {
			t.Errorf("unexpected model %v", body["model"])
		}
		if body["max_completion_tokens"] != float64(300) {
			t.Errorf("unexpected max_completion_tokens %v", body["max_completion_tokens"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	defer ts.Close()

	client, err := NewOpenAIClient("test-key", "", ts.URL+"/", option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}

	resp, err := client.Generate(context.Background(), "write a post", content.RemoteParams(content.KindSocial))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "Fresh copy" || resp.Model != "gpt-4o-mini" {
		t.Errorf("unexpected completion %+v", resp)
	}
	if resp.PromptTokens != 9 || resp.OutputTokens != 3 {
		t.Errorf("unexpected usage %+v", resp)
	}
	if client.Name() != "OpenAI (gpt-4o-mini) [Cloud]" {
		t.Errorf("unexpected name %s", client.Name())
	}
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","model":"gpt-4o-mini","choices":[]}`))
	}))
	defer ts.Close()

	client, _ := NewOpenAIClient("k", "gpt-4o-mini", ts.URL+"/", option.WithMaxRetries(0))
	_, err := client.Generate(context.Background(), "p", content.Params{})
	if !errors.Is(err, content.ErrBackendError) {
		t.Errorf("expected ErrBackendError, got %v", err)
	}
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer ts.Close()

	client, _ := NewOpenAIClient("k", "", ts.URL+"/", option.WithMaxRetries(0))
	if _, err := client.Generate(context.Background(), "p", content.Params{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestOpenAIClient_MissingKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "")
	if !errors.Is(err, content.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}
