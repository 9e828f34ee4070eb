package llm

import (
	"reflect"
	"testing"

	"github.com/joseph-ayodele/legal-docify/constants"
)

func TestExtractSection(t *testing.T) {
	const reply = "Key Issues:\n- A\n- B\n\nImportant Dates:\n- C\n\n"

	tests := []struct {
		name    string
		text    string
		section constants.Section
		want    []string
	}{
		{"first section", reply, constants.KeyIssues, []string{"- A", "- B"}},
		{"second section", reply, constants.ImportantDates, []string{"- C"}},
		{"missing section", reply, constants.RelevantParties, []string{}},
		// An unterminated last section runs to the end of the reply.
		{"no trailing blank line", "Key Issues:\n- A\n", constants.KeyIssues, []string{"- A"}},
		{"header at end of text", "Key Issues:", constants.KeyIssues, []string{}},
		{"empty section", "Key Issues:\n\n- A", constants.KeyIssues, []string{}},
		{"indented bullets are trimmed", "Relevant Parties:\n    - Party 1\n   \n", constants.RelevantParties, []string{"- Party 1"}},
		{"first occurrence wins", "Key Issues:\n- one\n\nKey Issues:\n- two\n\n", constants.KeyIssues, []string{"- one"}},
		{"empty text", "", constants.KeyIssues, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSection(tt.text, tt.section)
			if got == nil {
				t.Fatal("ExtractSection() returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSectionKeepsBulletMarkers(t *testing.T) {
	got := BlankLineParser{}.ExtractSection("Important Dates:\n- 1 March 2024: Hearing\n* 2 April: Filing\n\n", constants.ImportantDates)
	want := []string{"- 1 March 2024: Hearing", "* 2 April: Filing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
