package llm

import (
	"strings"

	"github.com/joseph-ayodele/legal-docify/constants"
)

// SectionParser pulls the lines of one labeled section out of a free-form reply.
// A missing section yields an empty slice, never an error.
type SectionParser interface {
	ExtractSection(text string, section constants.Section) []string
}

// BlankLineParser finds the first "<Section>:" and reads until the next blank
// line ("\n\n"). When no blank line follows, the section runs to the end of text.
type BlankLineParser struct{}

const sectionEnd = "\n\n"

func (BlankLineParser) ExtractSection(text string, section constants.Section) []string {
	header := section.Header()
	i := strings.Index(text, header)
	if i < 0 {
		return []string{}
	}
	body := text[i+len(header):]
	if j := strings.Index(body, sectionEnd); j >= 0 {
		body = body[:j]
	}

	lines := []string{}
	for _, line := range strings.Split(body, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// ExtractSection runs the default parser.
func ExtractSection(text string, section constants.Section) []string {
	return BlankLineParser{}.ExtractSection(text, section)
}
