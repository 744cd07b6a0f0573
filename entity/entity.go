// Package entity defines the identity layer: the typed records exported to
// the graph. Every record is a variant over a shared Base carrying a
// deterministic URI identifier, timestamps, and provenance. Relationships
// between entities are URI strings, never pointers, so any entity
// serializes on its own and re-extraction of unchanged input reproduces
// identical identifiers.
package entity

import (
	"time"

	"github.com/c360studio/notegraph/vocabulary/kb"
)

// Span is a half-open byte range into the originating document body.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Base carries the fields common to every entity variant.
type Base struct {
	ID             string    `json:"id"`
	Label          string    `json:"label,omitempty"`
	SourceDocument string    `json:"source_document,omitempty"`
	Parent         string    `json:"parent,omitempty"`
	Span           *Span     `json:"span,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Entity is the closed union over all exported record variants. The graph
// assembler switches exhaustively on the concrete type.
type Entity interface {
	Kind() kb.EntityType
	Common() *Base
}

// Document is the entity for a processed source file.
type Document struct {
	Base
	Path  string `json:"path"`
	Title string `json:"title,omitempty"`
}

func (e *Document) Kind() kb.EntityType { return kb.EntityTypeDocument }
func (e *Document) Common() *Base       { return &e.Base }

// Heading is a document heading.
type Heading struct {
	Base
	Level int    `json:"level"`
	Text  string `json:"text"`
}

func (e *Heading) Kind() kb.EntityType { return kb.EntityTypeHeading }
func (e *Heading) Common() *Base       { return &e.Base }

// Section is the content governed by one heading. Parent references the
// heading's URI.
type Section struct {
	Base
	Level int `json:"level"`
	Order int `json:"order"`
}

func (e *Section) Kind() kb.EntityType { return kb.EntityTypeSection }
func (e *Section) Common() *Base       { return &e.Base }

// List is an ordered or unordered list block.
type List struct {
	Base
	Ordered   bool `json:"ordered"`
	ItemCount int  `json:"item_count"`
}

func (e *List) Kind() kb.EntityType { return kb.EntityTypeList }
func (e *List) Common() *Base       { return &e.Base }

// ListItem is a single list entry. Parent references the enclosing list.
type ListItem struct {
	Base
	Text    string `json:"text"`
	Nesting int    `json:"nesting"`
}

func (e *ListItem) Kind() kb.EntityType { return kb.EntityTypeListItem }
func (e *ListItem) Common() *Base       { return &e.Base }

// Table is a pipe table. Row and column counts include the header row.
type Table struct {
	Base
	Rows    int      `json:"rows"`
	Columns int      `json:"columns"`
	Headers []string `json:"headers,omitempty"`
}

func (e *Table) Kind() kb.EntityType { return kb.EntityTypeTable }
func (e *Table) Common() *Base       { return &e.Base }

// CodeBlock is a fenced code block.
type CodeBlock struct {
	Base
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

func (e *CodeBlock) Kind() kb.EntityType { return kb.EntityTypeCodeBlock }
func (e *CodeBlock) Common() *Base       { return &e.Base }

// Blockquote is a quote block at a single nesting depth.
type Blockquote struct {
	Base
	Depth int    `json:"depth"`
	Text  string `json:"text"`
}

func (e *Blockquote) Kind() kb.EntityType { return kb.EntityTypeQuote }
func (e *Blockquote) Common() *Base       { return &e.Base }

// Todo is a checkbox list item. Due, priority and assignees are optional;
// assignees hold URIs resolved like any other reference.
type Todo struct {
	Base
	Description string     `json:"description"`
	Checked     bool       `json:"checked"`
	Due         *time.Time `json:"due,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Assignees   []string   `json:"assignees,omitempty"`
}

func (e *Todo) Kind() kb.EntityType { return kb.EntityTypeTodo }
func (e *Todo) Common() *Base       { return &e.Base }

// Tag is a tag from any source: body hashtag, category token, front matter
// or single-word heading.
type Tag struct {
	Base
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
}

func (e *Tag) Kind() kb.EntityType { return kb.EntityTypeTag }
func (e *Tag) Common() *Base       { return &e.Base }

// Link is an inline link, reference link or citation.
type Link struct {
	Base
	URL      string `json:"url,omitempty"`
	Text     string `json:"text"`
	Title    string `json:"title,omitempty"`
	Internal bool   `json:"internal"`
	LinkKind string `json:"link_kind"`
}

func (e *Link) Kind() kb.EntityType { return kb.EntityTypeLink }
func (e *Link) Common() *Base       { return &e.Base }

// WikiLink is a cross-document reference. ResolvedDocument is the target
// document's URI when registered, empty on a miss. The reference is weak:
// it denotes relation, not ownership.
type WikiLink struct {
	Base
	Target           string        `json:"target"`
	Alias            string        `json:"alias,omitempty"`
	Literal          string        `json:"literal"`
	ResolvedDocument string        `json:"resolved_document,omitempty"`
	Entities         []NamedEntity `json:"entities,omitempty"`
}

func (e *WikiLink) Kind() kb.EntityType { return kb.EntityTypeWikiLink }
func (e *WikiLink) Common() *Base       { return &e.Base }

// NamedEntity is a span recognized by the entity-recognition collaborator.
type NamedEntity struct {
	Base
	Text       string  `json:"text"`
	NERLabel   string  `json:"ner_label,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

func (e *NamedEntity) Kind() kb.EntityType { return kb.EntityTypeNamedEntity }
func (e *NamedEntity) Common() *Base       { return &e.Base }

// Person is a person-like recognized entity.
type Person struct {
	Base
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Role    string   `json:"role,omitempty"`
}

func (e *Person) Kind() kb.EntityType { return kb.EntityTypePerson }
func (e *Person) Common() *Base       { return &e.Base }
