// Package graph maps identity-layer entities to subject-predicate-object
// statements under the notegraph vocabulary, one graph per document, and
// publishes them to the knowledge graph stream.
package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/notegraph/entity"
	"github.com/c360studio/notegraph/vocabulary/kb"
)

// tripleSource identifies this pipeline in emitted statements.
const tripleSource = "notegraph.processor"

// Assembler converts entities into triples. Subjects without a scheme are
// joined to the base namespace; subjects that already carry one pass
// through verbatim, which is how cross-document references escape a
// document's own namespace segment.
type Assembler struct {
	baseNamespace string
}

// NewAssembler creates an assembler scoped to a base namespace.
func NewAssembler(baseNamespace string) *Assembler {
	return &Assembler{baseNamespace: strings.TrimRight(baseNamespace, "/")}
}

// ResolveSubject returns the absolute URI for an identifier.
func (a *Assembler) ResolveSubject(id string) string {
	if strings.Contains(id, "://") {
		return id
	}
	return a.baseNamespace + "/" + strings.TrimLeft(id, "/")
}

// Assemble emits the statement set for one document's entities.
func (a *Assembler) Assemble(entities []entity.Entity) []message.Triple {
	var triples []message.Triple
	for _, e := range entities {
		triples = append(triples, a.entityTriples(e)...)
	}
	return triples
}

// entityTriples emits the common statements plus the kind-specific ones.
func (a *Assembler) entityTriples(e entity.Entity) []message.Triple {
	base := e.Common()
	subject := a.ResolveSubject(base.ID)
	at := base.UpdatedAt

	emit := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    subject,
			Predicate:  predicate,
			Object:     object,
			Source:     tripleSource,
			Timestamp:  at,
			Confidence: 1.0,
		}
	}

	triples := []message.Triple{
		emit(kb.EntityKind, string(e.Kind())),
	}
	if base.Label != "" {
		triples = append(triples, emit(kb.EntityLabel, base.Label))
	}
	if base.SourceDocument != "" {
		triples = append(triples, emit(kb.EntityDocument, a.ResolveSubject(base.SourceDocument)))
	}
	if base.Parent != "" {
		triples = append(triples, emit(kb.ElementParent, a.ResolveSubject(base.Parent)))
	}
	if base.Span != nil {
		triples = append(triples,
			emit(kb.EntitySpanStart, base.Span.Start),
			emit(kb.EntitySpanEnd, base.Span.End))
	}
	triples = append(triples,
		emit(kb.EntityCreatedAt, base.CreatedAt.UTC().Format(time.RFC3339)),
		emit(kb.EntityUpdatedAt, base.UpdatedAt.UTC().Format(time.RFC3339)))

	switch v := e.(type) {
	case *entity.Document:
		triples = append(triples, emit(kb.DocumentPath, v.Path))
		if v.Title != "" {
			triples = append(triples, emit(kb.DocumentTitle, v.Title))
		}

	case *entity.Heading:
		triples = append(triples, emit(kb.HeadingLevel, v.Level))

	case *entity.Section:
		triples = append(triples, emit(kb.SectionOrder, v.Order))
		if base.Parent != "" {
			triples = append(triples, emit(kb.SectionHeading, a.ResolveSubject(base.Parent)))
		}

	case *entity.List:
		triples = append(triples,
			emit(kb.ListOrdered, v.Ordered),
			emit(kb.ListItemCount, v.ItemCount))

	case *entity.ListItem:
		triples = append(triples, emit(kb.ItemNesting, v.Nesting))

	case *entity.Table:
		triples = append(triples,
			emit(kb.TableRows, v.Rows),
			emit(kb.TableColumns, v.Columns))
		if len(v.Headers) > 0 {
			triples = append(triples, emit(kb.TableHeaders, strings.Join(v.Headers, ",")))
		}

	case *entity.CodeBlock:
		if v.Language != "" {
			triples = append(triples, emit(kb.CodeLanguage, v.Language))
		}

	case *entity.Blockquote:
		triples = append(triples, emit(kb.QuoteDepth, v.Depth))

	case *entity.Todo:
		triples = append(triples,
			emit(kb.TodoDescription, v.Description),
			emit(kb.TodoChecked, v.Checked))
		if v.Due != nil {
			triples = append(triples, emit(kb.TodoDue, v.Due.UTC().Format(time.RFC3339)))
		}
		if v.Priority != "" {
			triples = append(triples, emit(kb.TodoPriority, v.Priority))
		}
		for _, assignee := range v.Assignees {
			triples = append(triples, emit(kb.TodoAssignee, a.ResolveSubject(assignee)))
		}

	case *entity.Tag:
		triples = append(triples, emit(kb.TagName, v.Name))
		if v.Category != "" {
			triples = append(triples, emit(kb.TagCategory, v.Category))
		}
		if v.Source != "" {
			triples = append(triples, emit(kb.TagSource, v.Source))
		}

	case *entity.Link:
		if v.URL != "" {
			triples = append(triples, emit(kb.LinkURL, v.URL))
		}
		if v.Title != "" {
			triples = append(triples, emit(kb.LinkTitle, v.Title))
		}
		triples = append(triples,
			emit(kb.LinkInternal, v.Internal),
			emit(kb.LinkKind, v.LinkKind))

	case *entity.WikiLink:
		triples = append(triples, emit(kb.WikiLinkTarget, v.Target))
		if v.Alias != "" {
			triples = append(triples, emit(kb.WikiLinkAlias, v.Alias))
		}
		if v.ResolvedDocument != "" {
			triples = append(triples, emit(kb.WikiLinkResolved, a.ResolveSubject(v.ResolvedDocument)))
		}
		for i := range v.Entities {
			triples = append(triples, a.entityTriples(&v.Entities[i])...)
		}

	case *entity.NamedEntity:
		if v.NERLabel != "" {
			triples = append(triples, emit(kb.NerLabel, v.NERLabel))
		}
		if v.Confidence > 0 {
			triples = append(triples, emit(kb.NerConfidence, v.Confidence))
		}

	case *entity.Person:
		triples = append(triples, emit(kb.PersonName, v.Name))
		for _, alias := range v.Aliases {
			triples = append(triples, emit(kb.PersonAlias, alias))
		}

	default:
		// A new variant must get an arm above before it can be exported.
		panic(fmt.Sprintf("graph: unhandled entity kind %T", e))
	}

	return triples
}
