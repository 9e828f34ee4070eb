package llm

import (
	"strings"

	"github.com/joseph-ayodele/legal-docify/constants"
)

// SummarySystemPrompt is the persona for the summarization call.
const SummarySystemPrompt = "You are a legal assistant, with an expert knowledge in Australian law."

// MetadataSystemPrompt is the persona for the metadata call. The header
// words must match constants.MetadataSections; the section parser keys on them.
var MetadataSystemPrompt = strings.Join([]string{
	"You are a metadata extraction assistant. Your job is to extract metadata",
	"from legal and technical documents in the following format:",
	"",
	constants.KeyIssues.Header(),
	"    - Issue 1",
	"    - Issue 2",
	constants.ImportantDates.Header(),
	"    - Date 1: Reason for importance",
	"    - Date 2: Reason for importance",
	constants.RelevantParties.Header(),
	"    - Party 1",
	"    - Party 2",
}, "\n")

var summaryInstructions = strings.Join([]string{
	"Summarize the following document in plain text that is coherent, logically structured,",
	"contextually accurate and easy to understand by a legal professional with no prior knowledge of the matter.",
	"Adhere to this format:",
	"",
	constants.SummaryTitle + ":",
	"[Provide a concise title for the document]",
	"",
	constants.SummaryOverview + ":",
	"[Give a brief overview of the content]",
	"",
	constants.SummaryKeyPoints + ":",
	"- [Key point 1]: [Explanation of key point 1]",
	"- [Key point 2]: [Explanation of key point 2]",
	"- [Additional key points as needed]",
	"",
	constants.SummaryConclusion + ":",
	"[Provide a final remark summarizing the overall matter]",
	"",
	"Document:",
}, "\n")

// BuildSummaryPrompt embeds the combined document text verbatim after the template.
func BuildSummaryPrompt(documentText string) string {
	var b strings.Builder
	b.Grow(len(summaryInstructions) + len(documentText) + 1)
	b.WriteString(summaryInstructions)
	b.WriteString("\n")
	b.WriteString(documentText)
	return b.String()
}

// BuildMetadataPrompt asks for metadata from the summary text, not the source document.
func BuildMetadataPrompt(summary string) string {
	return "Extract metadata from this document:\n\n" + summary
}
