package vertex

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"
)

func TestResponseText(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		wantText  string
		wantParts int
	}{
		{"nil", nil, "", 0},
		{"no candidates", &genai.GenerateContentResponse{}, "", 0},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "", 0},
		{
			"single part",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("Key Issues:\n- A")}},
			}}},
			"Key Issues:\n- A", 1,
		},
		{
			"parts are concatenated",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("a"), genai.Blob{MIMEType: "image/png"}, genai.Text("b")}},
			}}},
			"ab", 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, parts := ResponseText(tt.resp)
			if text != tt.wantText || parts != tt.wantParts {
				t.Errorf("ResponseText() = (%q, %d), want (%q, %d)", text, parts, tt.wantText, tt.wantParts)
			}
		})
	}
}

func TestNewClientRequiresProject(t *testing.T) {
	if _, err := NewClient(t.Context(), Config{Region: "us-central1"}, nil); err == nil {
		t.Fatal("expected error without project id")
	}
}
