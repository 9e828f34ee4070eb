package constants

// PipelineState is the canonical state of one ProcessDocuments run.
type PipelineState string

// Stable values (stored as-is in the audit table).
const (
	StateNormalizing        PipelineState = "NORMALIZING"
	StateSummarizing        PipelineState = "SUMMARIZING"
	StateExtractingMetadata PipelineState = "EXTRACTING_METADATA"
	StateDone               PipelineState = "DONE"
	StateFailed             PipelineState = "FAILED" // terminal failure, audit only
)
