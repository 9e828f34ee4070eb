package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm"
)

// ErrEmptyReply is the cause recorded when a completer returns only whitespace.
var ErrEmptyReply = errors.New("llm returned an empty reply")

// SummaryGenerator runs the first LLM call: combined document text in,
// unparsed summary text out.
type SummaryGenerator struct {
	llm         llm.Completer
	callTimeout time.Duration
	logger      *slog.Logger
}

func NewSummaryGenerator(c llm.Completer, callTimeout time.Duration, logger *slog.Logger) *SummaryGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryGenerator{llm: c, callTimeout: callTimeout, logger: logger}
}

// Generate calls the LLM exactly once. Any failure comes back as
// *common.LLMInvocationError.
func (g *SummaryGenerator) Generate(ctx context.Context, combinedText string) (string, error) {
	reply, err := complete(ctx, g.llm, g.callTimeout, "summary", llm.SummarySystemPrompt, llm.BuildSummaryPrompt(combinedText))
	if err != nil {
		return "", err
	}
	g.logger.Debug("pipeline.summary.reply",
		"req_id", common.RequestIDFromContext(ctx),
		"input_chars", len(combinedText),
		"summary_chars", len(reply),
	)
	return reply, nil
}

// complete is the shared single-shot call used by both stages: bounded by
// callTimeout, cancelled with ctx, never retried.
func complete(ctx context.Context, c llm.Completer, callTimeout time.Duration, stage, system, user string) (string, error) {
	provider, _ := llm.Describe(c)

	callCtx, cancel := common.WithTimeout(ctx, callTimeout)
	defer cancel()

	reply, err := c.Complete(callCtx, system, user)
	if err != nil {
		return "", &common.LLMInvocationError{Stage: stage, Provider: provider, Cause: err}
	}
	if strings.TrimSpace(reply) == "" {
		return "", &common.LLMInvocationError{Stage: stage, Provider: provider, Cause: ErrEmptyReply}
	}
	return reply, nil
}
