package extract

import (
	"strings"

	"github.com/c360studio/notegraph/registry"
	"github.com/c360studio/notegraph/source"
)

// WikiLinks extracts [[target]] and [[target|alias]] cross-document
// references and resolves each target against the document registry.
// Matching is non-greedy: an opening "[[" is abandoned when another "[["
// occurs before its "]]", so malformed openings lose to the next closed
// pair. A registry miss is not an error; the element simply carries no
// resolved identifier.
type WikiLinks struct {
	registry *registry.Registry
}

// NewWikiLinks creates the cross-document link extractor. The registry may
// be nil, in which case no target resolves.
func NewWikiLinks(reg *registry.Registry) *WikiLinks {
	return &WikiLinks{registry: reg}
}

// Name identifies the extractor.
func (x *WikiLinks) Name() string { return "wikilinks" }

// Extract returns wikilink elements in document order.
func (x *WikiLinks) Extract(doc *source.Document) ([]Element, error) {
	body := doc.Body
	masked := codeMask(body)

	var elements []Element
	wikiCount := 0

	i := 0
	for {
		open := strings.Index(body[i:], "[[")
		if open < 0 {
			break
		}
		open += i

		if masked[open] {
			i = open + 2
			continue
		}

		inner := strings.Index(body[open+2:], "]]")
		if inner < 0 {
			break
		}
		close := open + 2 + inner

		// Another opening before the close wins the pair.
		if next := strings.Index(body[open+2:close], "[["); next >= 0 {
			i = open + 2 + next
			continue
		}

		end := close + 2
		target := body[open+2 : close]
		alias := ""
		if pipe := strings.Index(target, "|"); pipe >= 0 {
			alias = target[pipe+1:]
			target = target[:pipe]
		}
		target = strings.TrimSpace(target)
		alias = strings.TrimSpace(alias)

		el := Element{
			LocalID: localID(KindWikiLink, wikiCount),
			Kind:    KindWikiLink,
			Span:    Span{Start: open, End: end},
			Text:    body[open:end],
		}
		el.SetMeta(MetaTarget, target)
		if alias != "" {
			el.SetMeta(MetaAlias, alias)
		}
		if x.registry != nil && target != "" {
			if uri, ok := x.registry.FindByPath(target); ok {
				el.SetMeta(MetaResolvedURI, uri)
			}
		}
		elements = append(elements, el)
		wikiCount++

		i = end
	}

	return elements, nil
}
