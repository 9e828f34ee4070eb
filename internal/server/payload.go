package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

// ErrTrailingData is returned when anything but whitespace follows the documents array.
var ErrTrailingData = errors.New("unexpected data after documents array")

// DecodeDocuments reads exactly one JSON array of documents from r. A null
// body or trailing content is rejected. Decode failures wrap
// common.ErrInvalidInput; read errors (e.g. *http.MaxBytesError) stay
// reachable through errors.As.
func DecodeDocuments(r io.Reader) ([]entity.RawDocument, error) {
	dec := json.NewDecoder(r)

	var docs []entity.RawDocument
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload: %w", common.ErrInvalidInput, err)
	}
	if docs == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON array of documents", common.ErrInvalidInput)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, ErrTrailingData)
	}
	// More stops at a closing bracket, so a stray "]" needs one more read.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = ErrTrailingData
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	return docs, nil
}
