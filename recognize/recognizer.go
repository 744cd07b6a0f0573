// Package recognize defines the entity-recognition collaborator used by the
// processor: a single-operation interface plus a model-backed
// implementation and a static test double. The processor treats a
// recognizer failure as "no entities found"; implementations just return
// the error.
package recognize

import (
	"context"
)

// Span is one recognized entity occurrence. Start and end are byte offsets
// into the analyzed text, half-open.
type Span struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Recognizer extracts named entities from free text. Implementations must
// be safe to call repeatedly with identical input and may be called
// concurrently across documents.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// Static is a fixed-result recognizer for tests. Results maps input text
// to the spans to return; unlisted input yields nothing.
type Static struct {
	Results map[string][]Span
}

// Recognize returns the configured spans for the exact input text.
func (s *Static) Recognize(_ context.Context, text string) ([]Span, error) {
	return s.Results[text], nil
}
