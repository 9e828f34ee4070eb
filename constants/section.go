package constants

// Section is a labeled block of the metadata reply.
type Section string

const (
	KeyIssues       Section = "Key Issues"
	ImportantDates  Section = "Important Dates"
	RelevantParties Section = "Relevant Parties"
)

// MetadataSections is the fixed extraction order.
var MetadataSections = []Section{
	KeyIssues,
	ImportantDates,
	RelevantParties,
}

// Header returns the literal header line prefix, e.g. "Key Issues:".
func (s Section) Header() string {
	return string(s) + ":"
}

// Summary template headers. The summary is returned unparsed; these only shape the prompt.
const (
	SummaryTitle      = "Title"
	SummaryOverview   = "Overview"
	SummaryKeyPoints  = "Key Points"
	SummaryConclusion = "Conclusion"
)
