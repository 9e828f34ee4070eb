package ocr

import (
	"errors"
	"testing"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

func words(ws ...string) []entity.RawWord {
	out := make([]entity.RawWord, 0, len(ws))
	for _, w := range ws {
		out = append(out, entity.RawWord{Content: entity.Str(w)})
	}
	return out
}

func page(n int, ws ...string) entity.RawPage {
	return entity.RawPage{PageNumber: entity.Int(n), Words: words(ws...)}
}

func TestNormalizeJoinsWordsAndCountsPages(t *testing.T) {
	docs := []entity.RawDocument{
		{DocID: entity.Str("a"), Content: []entity.RawPage{page(1, "Hello", "world"), page(2)}},
		{DocID: entity.Str("b"), Content: []entity.RawPage{}},
	}

	got, err := Normalize(docs)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, d := range got {
		if d.TotalPages != len(d.Content) {
			t.Errorf("doc %s: TotalPages = %d, len(Content) = %d", d.DocID, d.TotalPages, len(d.Content))
		}
	}
	if got[0].Content[0].Words != "Hello world" {
		t.Errorf("page words = %q, want %q", got[0].Content[0].Words, "Hello world")
	}
	if got[0].Content[1].Words != "" {
		t.Errorf("empty page words = %q, want empty", got[0].Content[1].Words)
	}
	if got[1].TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", got[1].TotalPages)
	}
}

func TestCombineKeepsInputOrder(t *testing.T) {
	// page numbers deliberately out of order: no sorting may happen
	docs := []entity.RawDocument{
		{DocID: entity.Str("d1"), Content: []entity.RawPage{page(3, "third"), page(1, "first")}},
		{DocID: entity.Str("d2"), Content: []entity.RawPage{page(2, "second", "doc")}},
	}
	norm, err := Normalize(docs)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got, want := Combine(norm), "third first second doc"; got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
	if norm[0].Content[0].PageNumber != 3 {
		t.Errorf("first page number = %d, want 3", norm[0].Content[0].PageNumber)
	}
}

func TestCombineSingleDocument(t *testing.T) {
	norm, err := Normalize([]entity.RawDocument{
		{DocID: entity.Str("x"), Content: []entity.RawPage{page(1, "Hello", "world")}},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got := Combine(norm); got != "Hello world" {
		t.Errorf("Combine() = %q, want %q", got, "Hello world")
	}
}

func TestCombineEmpty(t *testing.T) {
	if got := Combine(nil); got != "" {
		t.Errorf("Combine(nil) = %q, want empty", got)
	}
	norm, _ := Normalize([]entity.RawDocument{{DocID: entity.Str("x"), Content: []entity.RawPage{}}})
	if got := Combine(norm); got != "" {
		t.Errorf("Combine(no pages) = %q, want empty", got)
	}
}

func TestJoinWordsIdempotentOnSingleWord(t *testing.T) {
	once := JoinWords([]string{"alpha beta"})
	twice := JoinWords([]string{once})
	if once != twice {
		t.Errorf("JoinWords not idempotent: %q vs %q", once, twice)
	}
	if got := JoinWords(nil); got != "" {
		t.Errorf("JoinWords(nil) = %q, want empty", got)
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		docs      []entity.RawDocument
		wantField string
		wantLoc   string
	}{
		{
			name:      "missing doc_id",
			docs:      []entity.RawDocument{{Content: []entity.RawPage{}}},
			wantField: "doc_id",
			wantLoc:   "documents[0]",
		},
		{
			name: "missing content",
			docs: []entity.RawDocument{
				{DocID: entity.Str("ok"), Content: []entity.RawPage{}},
				{DocID: entity.Str("bad")},
			},
			wantField: "content",
			wantLoc:   "documents[1]",
		},
		{
			name: "missing page_number",
			docs: []entity.RawDocument{{DocID: entity.Str("a"), Content: []entity.RawPage{
				page(1, "x"),
				{Words: words("y")},
			}}},
			wantField: "page_number",
			wantLoc:   "documents[0].content[1]",
		},
		{
			name: "missing word content",
			docs: []entity.RawDocument{{DocID: entity.Str("a"), Content: []entity.RawPage{
				{PageNumber: entity.Int(1), Words: []entity.RawWord{{Content: entity.Str("x")}, {}}},
			}}},
			wantField: "content",
			wantLoc:   "documents[0].content[0].words[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.docs)
			var mf *common.MissingFieldError
			if !errors.As(err, &mf) {
				t.Fatalf("error = %v, want *MissingFieldError", err)
			}
			if mf.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", mf.Field, tt.wantField)
			}
			if mf.Location() != tt.wantLoc {
				t.Errorf("Location() = %q, want %q", mf.Location(), tt.wantLoc)
			}
			if !errors.Is(err, common.ErrInvalidInput) {
				t.Error("expected errors.Is(err, ErrInvalidInput)")
			}
		})
	}
}

func TestStats(t *testing.T) {
	norm, _ := Normalize([]entity.RawDocument{
		{DocID: entity.Str("a"), Content: []entity.RawPage{page(1), page(2)}},
		{DocID: entity.Str("b"), Content: []entity.RawPage{page(1)}},
	})
	docs, pages := Stats(norm)
	if docs != 2 || pages != 3 {
		t.Errorf("Stats() = (%d, %d), want (2, 3)", docs, pages)
	}
}
