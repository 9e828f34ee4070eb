package entity

// RawWord is one recognized token. Fields other than content are ignored.
type RawWord struct {
	Content *string `json:"content"`
}

// RawPage is one page of recognized words as supplied by the caller.
type RawPage struct {
	PageNumber *int      `json:"page_number"`
	Words      []RawWord `json:"words,omitempty"`
}

// RawDocument is one input file. Content is nil when the key is absent or null.
type RawDocument struct {
	DocID   *string   `json:"doc_id"`
	Content []RawPage `json:"content"`
}

// NormalizedPage holds the page's words joined by single spaces.
type NormalizedPage struct {
	PageNumber int    `json:"page_number"`
	Words      string `json:"words"`
}

// NormalizedDocument is a RawDocument flattened to per-page text.
// TotalPages always equals len(Content).
type NormalizedDocument struct {
	DocID      string           `json:"doc_id"`
	TotalPages int              `json:"total_pages"`
	Content    []NormalizedPage `json:"content"`
}

// Str and Int build raw fields in tests and callers that assemble payloads by hand.
func Str(s string) *string { return &s }
func Int(i int) *int { return &i }
