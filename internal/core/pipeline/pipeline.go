package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm"
	"github.com/joseph-ayodele/legal-docify/internal/core/ocr"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

// Config holds per-call limits for the two LLM stages.
type Config struct {
	CallTimeout time.Duration     // applied to each LLM call; <=0 means caller's ctx only
	Parser      llm.SectionParser // default llm.BlankLineParser
}

// StageError records the state a run failed in. It unwraps to the cause, so
// errors.As still finds *common.MissingFieldError or *common.LLMInvocationError.
type StageError struct {
	State constants.PipelineState
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Report describes one run for logs and the audit table.
type Report struct {
	State         constants.PipelineState
	Documents     int
	Pages         int
	CombinedChars int
	SummaryChars  int
}

// Processor sequences normalize -> summarize -> extract metadata. It holds no
// per-request state and is safe for concurrent use.
type Processor struct {
	logger     *slog.Logger
	summarizer *SummaryGenerator
	extractor  *MetadataExtractor
}

func NewProcessor(logger *slog.Logger, completer llm.Completer, cfg Config) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		summarizer: NewSummaryGenerator(completer, cfg.CallTimeout, logger),
		extractor:  NewMetadataExtractor(completer, cfg.Parser, cfg.CallTimeout, logger),
	}
}

// ProcessDocuments returns either a complete result or an error, never both.
func (p *Processor) ProcessDocuments(ctx context.Context, docs []entity.RawDocument) (*entity.SummaryResult, error) {
	res, _, err := p.Process(ctx, docs)
	return res, err
}

// Process is ProcessDocuments plus a report of how far the run got. Failures
// are left to the caller to log; the pipeline only notes them at debug level.
func (p *Processor) Process(ctx context.Context, docs []entity.RawDocument) (*entity.SummaryResult, Report, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()
	rep := Report{State: constants.StateNormalizing}

	fail := func(err error) (*entity.SummaryResult, Report, error) {
		p.logger.Debug("pipeline.failed",
			"req_id", rid,
			"state", string(rep.State),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, rep, &StageError{State: rep.State, Err: err}
	}

	// 1) Normalize → per-page text + combined blob
	normalized, err := ocr.Normalize(docs)
	if err != nil {
		return fail(err)
	}
	combined := ocr.Combine(normalized)
	rep.Documents, rep.Pages = ocr.Stats(normalized)
	rep.CombinedChars = len(combined)
	p.logger.Info("pipeline.normalize.ok",
		"req_id", rid,
		"documents", rep.Documents,
		"pages", rep.Pages,
		"combined_chars", rep.CombinedChars,
	)

	// 2) Summary → raw reply text
	rep.State = constants.StateSummarizing
	summary, err := p.summarizer.Generate(ctx, combined)
	if err != nil {
		return fail(err)
	}
	rep.SummaryChars = len(summary)
	p.logger.Info("pipeline.summary.ok", "req_id", rid, "summary_chars", rep.SummaryChars)

	// 3) Metadata from the summary, not the source text
	rep.State = constants.StateExtractingMetadata
	sections, metadata, err := p.extractor.Extract(ctx, summary)
	if err != nil {
		return fail(err)
	}

	rep.State = constants.StateDone
	p.logger.Info("pipeline.done",
		"req_id", rid,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &entity.SummaryResult{
		Summary:  summary,
		Metadata: metadata,
		Sections: sections,
	}, rep, nil
}
