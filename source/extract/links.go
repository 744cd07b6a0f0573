package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/c360studio/notegraph/source"
)

// Links extracts inline links, reference-style links resolved against
// definitions declared anywhere in the document, and citations. A link is
// internal when its URL carries no scheme.
type Links struct{}

// NewLinks creates the link extractor.
func NewLinks() *Links {
	return &Links{}
}

// Name identifies the extractor.
func (x *Links) Name() string { return "links" }

var (
	definitionRe = regexp.MustCompile(`(?m)^[ \t]*\[([^\]]+)\]:[ \t]*(\S+)(?:[ \t]+"([^"]*)")?[ \t]*$`)
	inlineLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]*)(?:[ \t]+"([^"]*)")?\)`)
	refLinkRe    = regexp.MustCompile(`\[([^\]]+)\]\[([^\]]*)\]`)
	bareLinkRe   = regexp.MustCompile(`\[([^\]@]+)\]`)
	atCitationRe = regexp.MustCompile(`\[@([^\]\s]+)\]`)
	parenCiteRe  = regexp.MustCompile(`\(\s*[A-Z][A-Za-z.&'\- ]*,\s*\d{4}[a-z]?(?:\s*;\s*[A-Z][A-Za-z.&'\- ]*,\s*\d{4}[a-z]?)*\s*\)`)
	schemeRe     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)
	wikiSpanRe   = regexp.MustCompile(`\[\[[^\[\]]*\]\]`)
)

// linkDefinition is a [key]: url "title" declaration.
type linkDefinition struct {
	url   string
	title string
}

// Extract returns link and citation elements in document order.
func (x *Links) Extract(doc *source.Document) ([]Element, error) {
	body := doc.Body
	consumed := codeMask(body)

	// Definitions resolve forward and backward; their lines never produce
	// link elements themselves.
	defs := make(map[string]linkDefinition)
	for _, m := range definitionRe.FindAllStringSubmatchIndex(body, -1) {
		key := strings.ToLower(body[m[2]:m[3]])
		def := linkDefinition{url: body[m[4]:m[5]]}
		if m[6] >= 0 {
			def.title = body[m[6]:m[7]]
		}
		defs[key] = def
		markConsumed(consumed, m[0], m[1])
	}

	// WikiLink spans belong to the cross-document extractor.
	for _, m := range wikiSpanRe.FindAllStringIndex(body, -1) {
		markConsumed(consumed, m[0], m[1])
	}

	var found []Element

	take := func(start, end int) bool {
		for p := start; p < end; p++ {
			if consumed[p] {
				return false
			}
		}
		markConsumed(consumed, start, end)
		return true
	}

	for _, m := range inlineLinkRe.FindAllStringSubmatchIndex(body, -1) {
		if m[0] > 0 && body[m[0]-1] == '!' {
			continue // image
		}
		if !take(m[0], m[1]) {
			continue
		}
		el := Element{
			Span: Span{Start: m[0], End: m[1]},
			Text: body[m[2]:m[3]],
		}
		url := body[m[4]:m[5]]
		el.SetMeta(MetaURL, url)
		if m[6] >= 0 {
			el.SetMeta(MetaTitle, body[m[6]:m[7]])
		}
		el.SetMeta(MetaInternal, internalFlag(url))
		el.SetMeta(MetaLinkKind, LinkKindInline)
		found = append(found, el)
	}

	for _, m := range atCitationRe.FindAllStringSubmatchIndex(body, -1) {
		if !take(m[0], m[1]) {
			continue
		}
		el := Element{
			Span: Span{Start: m[0], End: m[1]},
			Text: body[m[2]:m[3]],
		}
		el.SetMeta(MetaLinkKind, LinkKindCitation)
		found = append(found, el)
	}

	for _, m := range refLinkRe.FindAllStringSubmatchIndex(body, -1) {
		text := body[m[2]:m[3]]
		key := text // shorthand [key][]
		if m[4] != m[5] {
			key = body[m[4]:m[5]]
		}
		def, ok := defs[strings.ToLower(key)]
		if !ok {
			continue
		}
		if !take(m[0], m[1]) {
			continue
		}
		el := Element{
			Span: Span{Start: m[0], End: m[1]},
			Text: text,
		}
		el.SetMeta(MetaURL, def.url)
		if def.title != "" {
			el.SetMeta(MetaTitle, def.title)
		}
		el.SetMeta(MetaInternal, internalFlag(def.url))
		el.SetMeta(MetaLinkKind, LinkKindReference)
		found = append(found, el)
	}

	// Bare [key] counts only when a definition exists; plain bracketed
	// tokens are not links.
	for _, m := range bareLinkRe.FindAllStringSubmatchIndex(body, -1) {
		text := body[m[2]:m[3]]
		def, ok := defs[strings.ToLower(text)]
		if !ok {
			continue
		}
		if !take(m[0], m[1]) {
			continue
		}
		el := Element{
			Span: Span{Start: m[0], End: m[1]},
			Text: text,
		}
		el.SetMeta(MetaURL, def.url)
		if def.title != "" {
			el.SetMeta(MetaTitle, def.title)
		}
		el.SetMeta(MetaInternal, internalFlag(def.url))
		el.SetMeta(MetaLinkKind, LinkKindReference)
		found = append(found, el)
	}

	for _, m := range parenCiteRe.FindAllStringIndex(body, -1) {
		if !take(m[0], m[1]) {
			continue
		}
		el := Element{
			Span: Span{Start: m[0], End: m[1]},
			Text: strings.TrimSpace(body[m[0]+1 : m[1]-1]),
		}
		el.SetMeta(MetaLinkKind, LinkKindCitation)
		found = append(found, el)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Span.Start < found[j].Span.Start
	})
	for i := range found {
		found[i].LocalID = localID(KindLink, i)
		found[i].Kind = KindLink
	}

	return found, nil
}

// markConsumed marks the half-open byte range as claimed.
func markConsumed(mask []bool, from, to int) {
	for p := from; p < to && p < len(mask); p++ {
		mask[p] = true
	}
}

// internalFlag reports "true" when the URL has no scheme.
func internalFlag(url string) string {
	if schemeRe.MatchString(url) {
		return "false"
	}
	return "true"
}
