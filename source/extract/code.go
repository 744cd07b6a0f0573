package extract

import (
	"strings"

	"github.com/c360studio/notegraph/source"
)

// CodeBlocks extracts triple-backtick fenced code blocks. The language is
// the first token after the opening fence, empty when absent. An
// unterminated fence runs to document end.
type CodeBlocks struct{}

// NewCodeBlocks creates the code block extractor.
func NewCodeBlocks() *CodeBlocks {
	return &CodeBlocks{}
}

// Name identifies the extractor.
func (x *CodeBlocks) Name() string { return "code" }

// Extract returns one element per fenced block in document order.
func (x *CodeBlocks) Extract(doc *source.Document) ([]Element, error) {
	lines := splitLines(doc.Body)

	var elements []Element
	codeCount := 0

	for i := 0; i < len(lines); i++ {
		if !isFenceLine(lines[i].text) {
			continue
		}
		open := lines[i]
		language := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(open.text), "```"))
		if idx := strings.IndexAny(language, " \t"); idx >= 0 {
			language = language[:idx]
		}

		bodyStart := open.end
		if bodyStart < len(doc.Body) {
			bodyStart++ // past the newline
		}
		bodyEnd := len(doc.Body)
		spanEnd := len(doc.Body)
		next := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if isFenceLine(lines[j].text) {
				// Trim the newline that precedes the closing fence.
				bodyEnd = lines[j].start
				if bodyEnd > bodyStart {
					bodyEnd--
				}
				spanEnd = lines[j].end
				next = j
				break
			}
		}
		if bodyEnd < bodyStart {
			bodyEnd = bodyStart
		}

		el := Element{
			LocalID: localID(KindCodeBlock, codeCount),
			Kind:    KindCodeBlock,
			Span:    Span{Start: open.start, End: spanEnd},
			Text:    doc.Body[bodyStart:bodyEnd],
		}
		el.SetMeta(MetaLanguage, language)
		elements = append(elements, el)
		codeCount++

		i = next
	}

	return elements, nil
}
