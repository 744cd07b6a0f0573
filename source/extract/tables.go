package extract

import (
	"strconv"
	"strings"

	"github.com/c360studio/notegraph/source"
)

// Tables extracts pipe tables: a header row, a dash separator row, and any
// number of data rows. Row and column counts include the header row.
type Tables struct{}

// NewTables creates the table extractor.
func NewTables() *Tables {
	return &Tables{}
}

// Name identifies the extractor.
func (x *Tables) Name() string { return "tables" }

// Extract returns one element per table in document order.
func (x *Tables) Extract(doc *source.Document) ([]Element, error) {
	lines := splitLines(doc.Body)
	inFence := fenceMask(lines)

	var elements []Element
	tableCount := 0

	for i := 0; i < len(lines); i++ {
		if inFence[i] || !isTableRow(lines[i].text) {
			continue
		}
		if i+1 >= len(lines) || inFence[i+1] || !isSeparatorRow(lines[i+1].text) {
			continue
		}

		headers := splitTableRow(lines[i].text)
		columns := len(headers)
		rows := 1 // header

		var dataRows [][]string
		last := i + 1
		for j := i + 2; j < len(lines); j++ {
			if inFence[j] || !isTableRow(lines[j].text) {
				break
			}
			dataRows = append(dataRows, splitTableRow(lines[j].text))
			rows++
			last = j
		}

		start := lines[i].start
		end := lines[last].end
		el := Element{
			LocalID: localID(KindTable, tableCount),
			Kind:    KindTable,
			Span:    Span{Start: start, End: end},
			Text:    doc.Body[start:end],
		}
		el.SetMeta(MetaRows, strconv.Itoa(rows))
		el.SetMeta(MetaColumns, strconv.Itoa(columns))
		// Header cells live under their own key; data cells under row_N, so
		// the two stay distinguishable in the element model.
		el.SetMeta(MetaHeaders, strings.Join(headers, ","))
		for n, cells := range dataRows {
			el.SetMeta(RowKey(n+1), strings.Join(cells, ","))
		}
		elements = append(elements, el)
		tableCount++

		i = last
	}

	return elements, nil
}

// isTableRow reports whether a line looks like a pipe-delimited row.
func isTableRow(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "|") && strings.Count(t, "|") >= 2
}

// isSeparatorRow reports whether a line is the dash row under the header.
// Cells may carry alignment colons.
func isSeparatorRow(s string) bool {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "|") {
		return false
	}
	cells := splitTableRow(t)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		c = strings.TrimSpace(c)
		c = strings.Trim(c, ":")
		if c == "" || strings.Trim(c, "-") != "" {
			return false
		}
	}
	return true
}

// splitTableRow splits a pipe row into trimmed cell values, dropping the
// empty edges produced by the leading and trailing pipes.
func splitTableRow(s string) []string {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	parts := strings.Split(t, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
