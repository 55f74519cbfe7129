package render

import (
	"strings"
	"testing"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"heading", "# Smart Kettles\n\nBoil faster.", []string{"<h1>Smart Kettles</h1>", "<p>Boil faster.</p>"}},
		{"bullets", "- one\n- two", []string{"<ul>", "<li>one</li>", "<li>two</li>"}},
		{"bold", "**Key Benefits:**", []string{"<strong>Key Benefits:</strong>"}},
		{"hard wraps", "line one\nline two", []string{"line one<br>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTML(tt.in)
			if err != nil {
				t.Fatalf("HTML() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("HTML() = %q, want substring %q", got, w)
				}
			}
		})
	}
}

func TestHTMLDropsRawMarkup(t *testing.T) {
	got, err := HTML("<script>alert(1)</script>\n\nsafe text")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML leaked into output: %q", got)
	}
	if !strings.Contains(got, "safe text") {
		t.Errorf("expected text to survive, got %q", got)
	}
}
