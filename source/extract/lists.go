package extract

import (
	"strconv"
	"strings"

	"github.com/c360studio/notegraph/source"
)

// Lists extracts list blocks and their items. A block is a maximal run of
// consecutive list-item lines; any other line ends the block. Item nesting
// is derived from leading indentation, counting each tab or two spaces as
// one level. The block's ordered flag follows its first item's marker.
type Lists struct{}

// NewLists creates the list extractor.
func NewLists() *Lists {
	return &Lists{}
}

// Name identifies the extractor.
func (x *Lists) Name() string { return "lists" }

// listItemLine is a parsed list-item source line.
type listItemLine struct {
	line    line
	nesting int
	ordered bool
	text    string
}

// Extract returns list elements and their item elements in document order.
func (x *Lists) Extract(doc *source.Document) ([]Element, error) {
	lines := splitLines(doc.Body)
	inFence := fenceMask(lines)

	var elements []Element
	var block []listItemLine
	listCount := 0
	itemCount := 0

	flush := func() {
		if len(block) == 0 {
			return
		}
		listID := localID(KindList, listCount)
		start := block[0].line.start
		end := block[len(block)-1].line.end

		listEl := Element{
			LocalID: listID,
			Kind:    KindList,
			Span:    Span{Start: start, End: end},
			Text:    doc.Body[start:end],
		}
		listEl.SetMeta(MetaOrdered, strconv.FormatBool(block[0].ordered))
		listEl.SetMeta(MetaItemCount, strconv.Itoa(len(block)))
		elements = append(elements, listEl)
		listCount++

		for _, it := range block {
			itemEl := Element{
				LocalID: localID(KindListItem, itemCount),
				Kind:    KindListItem,
				Span:    Span{Start: it.line.start, End: it.line.end},
				Text:    it.text,
				Parent:  listID,
			}
			itemEl.SetMeta(MetaLevel, strconv.Itoa(it.nesting))
			elements = append(elements, itemEl)
			itemCount++
		}
		block = nil
	}

	for i, ln := range lines {
		if inFence[i] {
			flush()
			continue
		}
		item, ok := parseListItem(ln)
		if !ok {
			flush()
			continue
		}
		block = append(block, item)
	}
	flush()

	return elements, nil
}

// parseListItem parses a single list-item line. Unordered markers are '-',
// '*' and '+' followed by a space or tab; ordered markers are a digit run
// followed by '.' and a space or tab.
func parseListItem(ln line) (listItemLine, bool) {
	s := ln.text
	i := 0
	nesting := 0
	spaces := 0
	for i < len(s) {
		switch s[i] {
		case '\t':
			nesting++
			spaces = 0
		case ' ':
			spaces++
			if spaces == 2 {
				nesting++
				spaces = 0
			}
		default:
			goto marker
		}
		i++
	}
	return listItemLine{}, false

marker:
	rest := s[i:]
	if len(rest) >= 2 && (rest[0] == '-' || rest[0] == '*' || rest[0] == '+') &&
		(rest[1] == ' ' || rest[1] == '\t') {
		return listItemLine{
			line:    ln,
			nesting: nesting,
			ordered: false,
			text:    strings.TrimSpace(rest[2:]),
		}, true
	}

	j := 0
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j > 0 && j+1 < len(rest) && rest[j] == '.' &&
		(rest[j+1] == ' ' || rest[j+1] == '\t') {
		return listItemLine{
			line:    ln,
			nesting: nesting,
			ordered: true,
			text:    strings.TrimSpace(rest[j+2:]),
		}, true
	}

	return listItemLine{}, false
}
