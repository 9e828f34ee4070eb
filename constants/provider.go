package constants

import "strings"

// Provider names an LLM backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderVertex Provider = "vertex"
)

// DefaultOpenAIModel is the model the summarization prompts were tuned against.
const DefaultOpenAIModel = "gpt-4o-mini-2024-07-18"

// DefaultVertexModel is used when LLM_PROVIDER=vertex and no model is configured.
const DefaultVertexModel = "gemini-1.5-pro"

// ParseProvider normalizes a provider name; unknown names report false.
func ParseProvider(s string) (Provider, bool) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderOpenAI:
		return ProviderOpenAI, true
	case ProviderVertex:
		return ProviderVertex, true
	}
	return "", false
}
