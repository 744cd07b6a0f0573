package extract

import (
	"strconv"
	"strings"

	"github.com/c360studio/notegraph/source"
)

// Blockquotes extracts '>'-prefixed quote blocks. Depth is the count of
// consecutive leading '>' markers; consecutive lines at the same depth merge
// into one element, and a depth change starts a new one.
type Blockquotes struct{}

// NewBlockquotes creates the blockquote extractor.
func NewBlockquotes() *Blockquotes {
	return &Blockquotes{}
}

// Name identifies the extractor.
func (x *Blockquotes) Name() string { return "quotes" }

// Extract returns blockquote elements in document order.
func (x *Blockquotes) Extract(doc *source.Document) ([]Element, error) {
	lines := splitLines(doc.Body)
	inFence := fenceMask(lines)

	var elements []Element
	quoteCount := 0

	curDepth := 0
	curStart := 0
	curEnd := 0
	var curText []string

	flush := func() {
		if curDepth == 0 {
			return
		}
		el := Element{
			LocalID: localID(KindBlockquote, quoteCount),
			Kind:    KindBlockquote,
			Span:    Span{Start: curStart, End: curEnd},
			Text:    strings.Join(curText, "\n"),
		}
		el.SetMeta(MetaLevel, strconv.Itoa(curDepth))
		elements = append(elements, el)
		quoteCount++
		curDepth = 0
		curText = nil
	}

	for i, ln := range lines {
		if inFence[i] {
			flush()
			continue
		}
		depth, text := parseQuoteLine(ln.text)
		if depth == 0 {
			flush()
			continue
		}
		if depth != curDepth {
			flush()
			curDepth = depth
			curStart = ln.start
		}
		curEnd = ln.end
		curText = append(curText, text)
	}
	flush()

	return elements, nil
}

// parseQuoteLine counts leading '>' markers, allowing a single space after
// each, and returns the remaining text. Depth 0 means not a quote line.
func parseQuoteLine(s string) (depth int, text string) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for i < len(s) && s[i] == '>' {
		depth++
		i++
		if i < len(s) && s[i] == ' ' {
			i++
		}
	}
	if depth == 0 {
		return 0, ""
	}
	return depth, strings.TrimSpace(s[i:])
}
