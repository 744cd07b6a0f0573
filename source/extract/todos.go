package extract

import (
	"strconv"
	"strings"

	"github.com/c360studio/notegraph/source"
)

// Todos extracts checkbox list items: a list item whose text begins with
// "[ ]", "[x]" or "[X]". Indentation before the list marker does not
// disqualify the item.
type Todos struct{}

// NewTodos creates the todo extractor.
func NewTodos() *Todos {
	return &Todos{}
}

// Name identifies the extractor.
func (x *Todos) Name() string { return "todos" }

// Extract returns one element per checkbox item in document order.
func (x *Todos) Extract(doc *source.Document) ([]Element, error) {
	lines := splitLines(doc.Body)
	inFence := fenceMask(lines)

	var elements []Element
	todoCount := 0

	for i, ln := range lines {
		if inFence[i] {
			continue
		}
		item, ok := parseListItem(ln)
		if !ok {
			continue
		}
		checked, text, ok := parseCheckbox(item.text)
		if !ok {
			continue
		}

		el := Element{
			LocalID: localID(KindTodo, todoCount),
			Kind:    KindTodo,
			Span:    Span{Start: ln.start, End: ln.end},
			Text:    text,
		}
		el.SetMeta(MetaChecked, strconv.FormatBool(checked))
		elements = append(elements, el)
		todoCount++
	}

	return elements, nil
}

// parseCheckbox strips a leading checkbox token from list-item text.
func parseCheckbox(s string) (checked bool, text string, ok bool) {
	if len(s) < 3 || s[0] != '[' || s[2] != ']' {
		return false, "", false
	}
	switch s[1] {
	case ' ':
		checked = false
	case 'x', 'X':
		checked = true
	default:
		return false, "", false
	}
	return checked, strings.TrimSpace(s[3:]), true
}
