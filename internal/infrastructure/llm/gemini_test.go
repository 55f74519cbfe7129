package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/contentsage/contentsage-api/internal/domain/content"
)

func TestNewGeminiClient_MissingKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	if !errors.Is(err, content.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{"nil response", nil, "", true},
		{"no candidates", &genai.GenerateContentResponse{}, "", true},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "", true},
		{
			"joins text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
			}}},
			"Hello, world",
			false,
		},
		{
			"no text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
			}}},
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractText(tt.resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, content.ErrBackendError) {
				t.Errorf("expected ErrBackendError, got %v", err)
			}
			if got != tt.want {
				t.Errorf("extractText() = %q, want %q", got, tt.want)
			}
		})
	}
}
