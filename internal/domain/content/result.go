package content

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Source records where a result's text actually came from.
type Source string

const (
	SourceBackend  Source = "backend"
	SourceTemplate Source = "template"
)

// TemplateBackendID is reported as BackendUsed for template-derived results.
const TemplateBackendID = "template"

// Result is the normalized outcome of one generation request.
type Result struct {
	Success        bool    `json:"success"`
	Content        string  `json:"content,omitempty"`
	BackendUsed    string  `json:"backend_used"`
	Source         Source  `json:"source"`
	Model          string  `json:"model,omitempty"`
	FallbackFrom   string  `json:"fallback_from,omitempty"`
	FallbackReason string  `json:"fallback_reason,omitempty"`
	WordCount      int     `json:"word_count"`
	CharacterCount int     `json:"character_count"`
	GenerationTime float64 `json:"generation_time"`
	Error          string  `json:"error,omitempty"`
}

// NewResult builds a successful result with counts derived from text.
func NewResult(text, backendUsed string, source Source, elapsed time.Duration) Result {
	return Result{
		Success:        true,
		Content:        text,
		BackendUsed:    backendUsed,
		Source:         source,
		WordCount:      len(strings.Fields(text)),
		CharacterCount: utf8.RuneCountInString(text),
		GenerationTime: Seconds(elapsed),
	}
}

// Failed builds a failure result; Content is always empty.
func Failed(backendUsed string, err error, elapsed time.Duration) Result {
	r := Result{
		BackendUsed:    backendUsed,
		GenerationTime: Seconds(elapsed),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Seconds rounds d to hundredths of a second.
func Seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
