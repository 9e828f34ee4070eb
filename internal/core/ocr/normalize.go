// Package ocr flattens OCR'd document payloads into plain text.
package ocr

import (
	"strings"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

// Normalize converts raw documents into per-page text, preserving document
// and page order exactly as supplied. Pages are never re-sorted by number.
func Normalize(docs []entity.RawDocument) ([]entity.NormalizedDocument, error) {
	out := make([]entity.NormalizedDocument, 0, len(docs))
	for di, doc := range docs {
		if doc.DocID == nil {
			return nil, &common.MissingFieldError{Field: "doc_id", DocIndex: di, PageIndex: -1, WordIndex: -1}
		}
		if doc.Content == nil {
			return nil, &common.MissingFieldError{Field: "content", DocIndex: di, PageIndex: -1, WordIndex: -1}
		}

		pages := make([]entity.NormalizedPage, 0, len(doc.Content))
		for pi, page := range doc.Content {
			np, err := normalizePage(page, di, pi)
			if err != nil {
				return nil, err
			}
			pages = append(pages, np)
		}
		out = append(out, entity.NormalizedDocument{
			DocID:      *doc.DocID,
			TotalPages: len(pages),
			Content:    pages,
		})
	}
	return out, nil
}

func normalizePage(page entity.RawPage, di, pi int) (entity.NormalizedPage, error) {
	if page.PageNumber == nil {
		return entity.NormalizedPage{}, &common.MissingFieldError{Field: "page_number", DocIndex: di, PageIndex: pi, WordIndex: -1}
	}
	words := make([]string, 0, len(page.Words))
	for wi, w := range page.Words {
		if w.Content == nil {
			return entity.NormalizedPage{}, &common.MissingFieldError{Field: "content", DocIndex: di, PageIndex: pi, WordIndex: wi}
		}
		words = append(words, *w.Content)
	}
	return entity.NormalizedPage{
		PageNumber: *page.PageNumber,
		Words:      JoinWords(words),
	}, nil
}

// JoinWords joins word contents with a single ASCII space, keeping their order.
func JoinWords(words []string) string {
	return strings.Join(words, " ")
}

// Combine concatenates every page's text across all documents, in input
// order, separated by a single space.
func Combine(docs []entity.NormalizedDocument) string {
	var parts []string
	for _, d := range docs {
		for _, p := range d.Content {
			parts = append(parts, p.Words)
		}
	}
	return strings.Join(parts, " ")
}

// Stats counts pages across normalized documents.
func Stats(docs []entity.NormalizedDocument) (documents, pages int) {
	for _, d := range docs {
		pages += d.TotalPages
	}
	return len(docs), pages
}
