// Package extract implements structural extraction of typed content elements
// from parsed documents. Each extractor materializes a flat, ordered sequence
// of elements; relationships between elements are expressed through local
// identifiers, never through pointers, so element collections serialize
// independently and carry no reference cycles.
package extract

import (
	"fmt"
	"strconv"
)

// Kind tags the element variant. The set is closed; the graph assembler
// switches exhaustively over it.
type Kind string

// Element kinds.
const (
	KindHeading    Kind = "heading"
	KindSection    Kind = "section"
	KindList       Kind = "list"
	KindListItem   Kind = "list_item"
	KindTable      Kind = "table"
	KindCodeBlock  Kind = "code_block"
	KindBlockquote Kind = "blockquote"
	KindTodo       Kind = "todo"
	KindTag        Kind = "tag"
	KindLink       Kind = "link"
	KindWikiLink   Kind = "wikilink"
)

// Span is a half-open byte range [Start, End) into the document body.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Metadata keys shared by extractors. Values are strings; numeric and
// boolean values use strconv formatting.
const (
	MetaLevel       = "level"        // heading level, quote depth, item nesting
	MetaOrder       = "order"        // document-order index among siblings
	MetaOrdered     = "ordered"      // "true" for numbered lists
	MetaItemCount   = "item_count"   // items per list
	MetaRows        = "rows"         // table row count, header included
	MetaColumns     = "columns"      // table column count
	MetaHeaders     = "headers"      // comma-joined table header cells
	MetaRowPrefix   = "row_"         // comma-joined data-row cells, keyed row_1..row_N
	MetaLanguage    = "language"     // code fence info token
	MetaChecked     = "checked"      // "true" for completed todos
	MetaCategory    = "category"     // tag category segment
	MetaSource      = "source"       // tag origin: body, frontmatter, heading
	MetaURL         = "url"          // link target
	MetaTitle       = "title"        // link title
	MetaInternal    = "internal"     // "true" when the URL has no scheme
	MetaLinkKind    = "link_kind"    // inline, reference, citation
	MetaTarget      = "target"       // wikilink target path text
	MetaAlias       = "alias"        // wikilink display alias
	MetaResolvedURI = "resolved_uri" // wikilink resolved document URI
)

// Tag source metadata values.
const (
	TagSourceBody        = "body"
	TagSourceFrontmatter = "frontmatter"
	TagSourceHeading     = "heading"
)

// Link kind metadata values.
const (
	LinkKindInline    = "inline"
	LinkKindReference = "reference"
	LinkKindCitation  = "citation"
)

// Element is one extracted content unit. LocalID is unique within a
// document; Parent refers to another element's LocalID or is empty.
type Element struct {
	LocalID  string            `json:"local_id"`
	Kind     Kind              `json:"kind"`
	Span     Span              `json:"span"`
	Text     string            `json:"text"`
	Parent   string            `json:"parent,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Meta returns a metadata value, or "" when absent.
func (e *Element) Meta(key string) string {
	return e.Metadata[key]
}

// MetaInt returns a metadata value parsed as an integer, or 0.
func (e *Element) MetaInt(key string) int {
	n, _ := strconv.Atoi(e.Metadata[key])
	return n
}

// MetaBool returns a metadata value parsed as a boolean, or false.
func (e *Element) MetaBool(key string) bool {
	b, _ := strconv.ParseBool(e.Metadata[key])
	return b
}

// SetMeta assigns a metadata value, allocating the map on first use.
func (e *Element) SetMeta(key, value string) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string, 4)
	}
	e.Metadata[key] = value
}

// localID builds a per-kind local identifier. Extractors restart their
// counters on every Extract call, keeping identifiers deterministic.
func localID(kind Kind, index int) string {
	return fmt.Sprintf("%s-%d", kind, index)
}

// RowKey builds the metadata key for a table data row. Row numbering starts
// at 1; the header row lives under MetaHeaders.
func RowKey(row int) string {
	return MetaRowPrefix + strconv.Itoa(row)
}
