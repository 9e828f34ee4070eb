package entity

// Metadata is the structured form of the second LLM reply.
type Metadata struct {
	KeyIssues       []string `json:"key_issues"`
	ImportantDates  []string `json:"important_dates"`
	RelevantParties []string `json:"relevant_parties"`
}

// SummaryResult is what ProcessDocuments hands back to the caller.
// Only summary and metadata go on the wire; Sections feeds exports.
type SummaryResult struct {
	Summary  string   `json:"summary"`
	Metadata string   `json:"metadata"`
	Sections Metadata `json:"-"`
}
