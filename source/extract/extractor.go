package extract

import (
	"strings"

	"github.com/c360studio/notegraph/registry"
	"github.com/c360studio/notegraph/source"
)

// Extractor materializes typed elements from a document body. Extraction is
// finite, restartable, and side-effect free; output order matches document
// order.
type Extractor interface {
	// Name identifies the extractor in error reports.
	Name() string

	// Extract returns the ordered elements found in the document.
	Extract(doc *source.Document) ([]Element, error)
}

// DefaultExtractors returns the standard extractor set in registration
// order. The processor concatenates outputs in this order. The registry is
// consumed only by the wikilink extractor and must be sealed before batch
// extraction begins.
func DefaultExtractors(reg *registry.Registry) []Extractor {
	return []Extractor{
		NewHeadings(),
		NewLists(),
		NewTables(),
		NewCodeBlocks(),
		NewBlockquotes(),
		NewTodos(),
		NewTags(),
		NewLinks(),
		NewWikiLinks(reg),
	}
}

// line is a body line with its byte offsets.
type line struct {
	text  string
	start int // offset of first byte
	end   int // offset past the last byte, newline excluded
}

// splitLines splits a body into lines with byte offsets, newline handling
// shared by all extractors.
func splitLines(body string) []line {
	var lines []line
	offset := 0
	for {
		idx := strings.IndexByte(body[offset:], '\n')
		if idx == -1 {
			if offset <= len(body) {
				lines = append(lines, line{text: body[offset:], start: offset, end: len(body)})
			}
			return lines
		}
		end := offset + idx
		text := body[offset:end]
		// Normalize CRLF without shifting offsets.
		if strings.HasSuffix(text, "\r") {
			text = text[:len(text)-1]
			end--
		}
		lines = append(lines, line{text: text, start: offset, end: end})
		offset = offset + idx + 1
	}
}

// isFenceLine reports whether a line opens or closes a fenced code block.
func isFenceLine(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, " \t"), "```")
}

// fenceMask returns a per-line marker of fenced code regions: true for every
// line inside a fence, fence delimiter lines included.
func fenceMask(lines []line) []bool {
	mask := make([]bool, len(lines))
	inFence := false
	for i, ln := range lines {
		if isFenceLine(ln.text) {
			mask[i] = true
			inFence = !inFence
			continue
		}
		mask[i] = inFence
	}
	return mask
}
