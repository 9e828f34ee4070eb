package llm

import "context"

// Completer is the one capability the pipeline needs from an LLM vendor:
// a system instruction plus one user message in, one reply text out.
// Implementations hold their own credential and model identifier.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Named is implemented by completers that can report their provider and model for logs.
type Named interface {
	Provider() string
	Model() string
}

// Describe returns provider/model for logging, or "unknown".
func Describe(c Completer) (provider, model string) {
	if n, ok := c.(Named); ok {
		return n.Provider(), n.Model()
	}
	return "unknown", ""
}
