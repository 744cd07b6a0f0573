package processor

import (
	"strings"
	"time"

	"github.com/c360studio/notegraph/entity"
	"github.com/c360studio/notegraph/identifier"
	"github.com/c360studio/notegraph/recognize"
	"github.com/c360studio/notegraph/source"
	"github.com/c360studio/notegraph/source/extract"
	"github.com/c360studio/notegraph/vocabulary/kb"
)

// kindSegments maps element kinds to the identifier's URI kind segment.
var kindSegments = map[extract.Kind]kb.EntityType{
	extract.KindHeading:    kb.EntityTypeHeading,
	extract.KindSection:    kb.EntityTypeSection,
	extract.KindList:       kb.EntityTypeList,
	extract.KindListItem:   kb.EntityTypeListItem,
	extract.KindTable:      kb.EntityTypeTable,
	extract.KindCodeBlock:  kb.EntityTypeCodeBlock,
	extract.KindBlockquote: kb.EntityTypeQuote,
	extract.KindTodo:       kb.EntityTypeTodo,
	extract.KindTag:        kb.EntityTypeTag,
	extract.KindLink:       kb.EntityTypeLink,
	extract.KindWikiLink:   kb.EntityTypeWikiLink,
}

// converter turns one document's elements and recognized spans into
// identity-layer entities with deterministic URIs.
type converter struct {
	doc  *source.Document
	now  time.Time
	uris map[string]string // element local ID -> entity URI

	wikiLinks []*entity.WikiLink
	seenText  map[string]bool
}

func newConverter(doc *source.Document, now time.Time) *converter {
	return &converter{
		doc:      doc,
		now:      now,
		uris:     make(map[string]string),
		seenText: make(map[string]bool),
	}
}

// discriminator picks the text that keys an element's URI. Textual kinds
// use their content so equal text yields the equal identifier; container
// kinds use the positional local ID, which is equally stable across runs.
func discriminator(el extract.Element) string {
	switch el.Kind {
	case extract.KindSection, extract.KindList, extract.KindTable, extract.KindCodeBlock:
		return el.LocalID
	case extract.KindWikiLink:
		return el.Meta(extract.MetaTarget)
	default:
		return el.Text
	}
}

// convert produces the document entity, one entity per element, and the
// deduplicated recognized entities, in that order.
func (c *converter) convert(elements []extract.Element, spans []recognize.Span) []entity.Entity {
	out := make([]entity.Entity, 0, len(elements)+len(spans)+1)

	out = append(out, &entity.Document{
		Base:  c.base(c.doc.URI, c.doc.Title, nil),
		Path:  c.doc.Path,
		Title: c.doc.Title,
	})

	for _, el := range elements {
		segment, ok := kindSegments[el.Kind]
		if !ok {
			continue
		}
		c.uris[el.LocalID] = identifier.EntityURI(c.doc.URI, string(segment), discriminator(el))
	}

	for _, el := range elements {
		if converted := c.element(el); converted != nil {
			out = append(out, converted)
		}
	}

	for _, span := range spans {
		if c.seenText[span.Text] {
			continue
		}
		c.seenText[span.Text] = true
		if span.Label == "person" {
			out = append(out, c.person(span))
			continue
		}
		out = append(out, c.namedEntity(span))
	}

	return out
}

// base fills the shared entity fields.
func (c *converter) base(id, label string, span *entity.Span) entity.Base {
	return entity.Base{
		ID:             id,
		Label:          label,
		SourceDocument: c.doc.URI,
		Span:           span,
		CreatedAt:      c.now,
		UpdatedAt:      c.now,
	}
}

// element converts one structural element to its entity variant.
func (c *converter) element(el extract.Element) entity.Entity {
	id, ok := c.uris[el.LocalID]
	if !ok {
		return nil
	}

	span := &entity.Span{Start: el.Span.Start, End: el.Span.End}
	b := c.base(id, el.Text, span)
	b.Parent = c.uris[el.Parent]

	switch el.Kind {
	case extract.KindHeading:
		return &entity.Heading{
			Base:  b,
			Level: el.MetaInt(extract.MetaLevel),
			Text:  el.Text,
		}
	case extract.KindSection:
		return &entity.Section{
			Base:  b,
			Level: el.MetaInt(extract.MetaLevel),
			Order: el.MetaInt(extract.MetaOrder),
		}
	case extract.KindList:
		return &entity.List{
			Base:      b,
			Ordered:   el.MetaBool(extract.MetaOrdered),
			ItemCount: el.MetaInt(extract.MetaItemCount),
		}
	case extract.KindListItem:
		return &entity.ListItem{
			Base:    b,
			Text:    el.Text,
			Nesting: el.MetaInt(extract.MetaLevel),
		}
	case extract.KindTable:
		var headers []string
		if raw := el.Meta(extract.MetaHeaders); raw != "" {
			headers = strings.Split(raw, ",")
		}
		return &entity.Table{
			Base:    b,
			Rows:    el.MetaInt(extract.MetaRows),
			Columns: el.MetaInt(extract.MetaColumns),
			Headers: headers,
		}
	case extract.KindCodeBlock:
		return &entity.CodeBlock{
			Base:     b,
			Language: el.Meta(extract.MetaLanguage),
			Code:     el.Text,
		}
	case extract.KindBlockquote:
		return &entity.Blockquote{
			Base:  b,
			Depth: el.MetaInt(extract.MetaLevel),
			Text:  el.Text,
		}
	case extract.KindTodo:
		return &entity.Todo{
			Base:        b,
			Description: el.Text,
			Checked:     el.MetaBool(extract.MetaChecked),
		}
	case extract.KindTag:
		return &entity.Tag{
			Base:     b,
			Name:     el.Text,
			Category: el.Meta(extract.MetaCategory),
			Source:   el.Meta(extract.MetaSource),
		}
	case extract.KindLink:
		return &entity.Link{
			Base:     b,
			URL:      el.Meta(extract.MetaURL),
			Text:     el.Text,
			Title:    el.Meta(extract.MetaTitle),
			Internal: el.MetaBool(extract.MetaInternal),
			LinkKind: el.Meta(extract.MetaLinkKind),
		}
	case extract.KindWikiLink:
		wl := &entity.WikiLink{
			Base:             b,
			Target:           el.Meta(extract.MetaTarget),
			Alias:            el.Meta(extract.MetaAlias),
			Literal:          el.Text,
			ResolvedDocument: el.Meta(extract.MetaResolvedURI),
		}
		c.wikiLinks = append(c.wikiLinks, wl)
		return wl
	default:
		return nil
	}
}

// namedEntity builds a recognized-entity record.
func (c *converter) namedEntity(span recognize.Span) *entity.NamedEntity {
	id := identifier.EntityURI(c.doc.URI, string(kb.EntityTypeNamedEntity), span.Text)
	return &entity.NamedEntity{
		Base:       c.base(id, span.Text, entitySpan(span)),
		Text:       span.Text,
		NERLabel:   span.Label,
		Confidence: span.Confidence,
	}
}

// person builds a person record from a person-labeled span.
func (c *converter) person(span recognize.Span) *entity.Person {
	id := identifier.EntityURI(c.doc.URI, string(kb.EntityTypePerson), span.Text)
	return &entity.Person{
		Base: c.base(id, span.Text, entitySpan(span)),
		Name: span.Text,
	}
}

// entitySpan converts a recognized span, dropping the zero span used when
// offsets were unusable.
func entitySpan(span recognize.Span) *entity.Span {
	if span.Start == 0 && span.End == 0 {
		return nil
	}
	return &entity.Span{Start: span.Start, End: span.End}
}
