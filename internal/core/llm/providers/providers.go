// Package providers builds the configured llm.Completer.
package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm/openai"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm/vertex"
)

// New returns the completer for cfg.Provider and a closer for its resources.
func New(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (llm.Completer, func() error, error) {
	p, ok := constants.ParseProvider(cfg.Provider)
	if !ok {
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	switch p {
	case constants.ProviderVertex:
		c, err := vertex.NewClient(ctx, vertex.Config{
			ProjectID:   cfg.VertexProjectID,
			Region:      cfg.VertexRegion,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		c := openai.NewClient(openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		return c, func() error { return nil }, nil
	}
}
