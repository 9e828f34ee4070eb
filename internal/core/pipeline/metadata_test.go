package pipeline

import (
	"reflect"
	"testing"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

type fixedParser map[constants.Section][]string

func (p fixedParser) ExtractSection(_ string, s constants.Section) []string {
	if lines, ok := p[s]; ok {
		return lines
	}
	return []string{}
}

func TestFormatMetadata(t *testing.T) {
	tests := []struct {
		name string
		md   entity.Metadata
		want string
	}{
		{
			name: "all sections",
			md: entity.Metadata{
				KeyIssues:       []string{"- A"},
				ImportantDates:  []string{"- B: reason"},
				RelevantParties: []string{"- C", "- D"},
			},
			want: "Key Issues:\n- A\n\nImportant Dates:\n- B: reason\n\nRelevant Parties:\n- C\n- D",
		},
		{
			name: "empty sections keep headers",
			md:   entity.Metadata{KeyIssues: []string{"- A"}},
			want: "Key Issues:\n- A\n\nImportant Dates:\n\n\nRelevant Parties:\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMetadata(tt.md); got != tt.want {
				t.Errorf("FormatMetadata() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseUsesConfiguredParser(t *testing.T) {
	m := NewMetadataExtractor(nil, fixedParser{constants.RelevantParties: {"- X"}}, 0, quietLogger())
	got := m.Parse("ignored")
	want := entity.Metadata{KeyIssues: []string{}, ImportantDates: []string{}, RelevantParties: []string{"- X"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseDefaultParser(t *testing.T) {
	m := NewMetadataExtractor(nil, nil, 0, quietLogger())
	got := m.Parse(metadataReply)
	if !reflect.DeepEqual(got.KeyIssues, []string{"- A"}) || !reflect.DeepEqual(got.RelevantParties, []string{"- C"}) {
		t.Errorf("Parse() = %+v", got)
	}
}
