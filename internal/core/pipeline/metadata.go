package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

// MetadataExtractor runs the second LLM call against the summary and parses
// the three labeled sections out of the reply.
type MetadataExtractor struct {
	llm         llm.Completer
	parser      llm.SectionParser
	callTimeout time.Duration
	logger      *slog.Logger
}

func NewMetadataExtractor(c llm.Completer, parser llm.SectionParser, callTimeout time.Duration, logger *slog.Logger) *MetadataExtractor {
	if parser == nil {
		parser = llm.BlankLineParser{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataExtractor{llm: c, parser: parser, callTimeout: callTimeout, logger: logger}
}

// Extract returns the parsed sections and their formatted rendering.
// Missing sections are empty, not errors; a failed call is fatal.
func (m *MetadataExtractor) Extract(ctx context.Context, summary string) (entity.Metadata, string, error) {
	reply, err := complete(ctx, m.llm, m.callTimeout, "metadata", llm.MetadataSystemPrompt, llm.BuildMetadataPrompt(summary))
	if err != nil {
		return entity.Metadata{}, "", err
	}

	md := m.Parse(reply)
	rid := common.RequestIDFromContext(ctx)
	for _, s := range constants.MetadataSections {
		if len(sectionLines(md, s)) == 0 {
			m.logger.Warn("pipeline.metadata.section_missing", "req_id", rid, "section", string(s))
		}
	}
	m.logger.Debug("pipeline.metadata.ok",
		"req_id", rid,
		"key_issues", len(md.KeyIssues),
		"important_dates", len(md.ImportantDates),
		"relevant_parties", len(md.RelevantParties),
	)
	return md, FormatMetadata(md), nil
}

// Parse reads the fixed sections, in order, from a metadata reply.
func (m *MetadataExtractor) Parse(reply string) entity.Metadata {
	return entity.Metadata{
		KeyIssues:       m.parser.ExtractSection(reply, constants.KeyIssues),
		ImportantDates:  m.parser.ExtractSection(reply, constants.ImportantDates),
		RelevantParties: m.parser.ExtractSection(reply, constants.RelevantParties),
	}
}

// FormatMetadata renders each section as its header line followed by its
// items, one per line, with a blank line between sections. An empty section
// keeps its header.
func FormatMetadata(md entity.Metadata) string {
	blocks := make([]string, 0, len(constants.MetadataSections))
	for _, s := range constants.MetadataSections {
		blocks = append(blocks, s.Header()+"\n"+strings.Join(sectionLines(md, s), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func sectionLines(md entity.Metadata, s constants.Section) []string {
	switch s {
	case constants.KeyIssues:
		return md.KeyIssues
	case constants.ImportantDates:
		return md.ImportantDates
	case constants.RelevantParties:
		return md.RelevantParties
	}
	return nil
}
