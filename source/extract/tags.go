package extract

import (
	"sort"
	"strings"

	"github.com/c360studio/notegraph/source"
)

// Tags extracts tags from three sources: front-matter tags/categories keys,
// body hashtags, and @category/tag tokens. A hashtag needs whitespace or
// start-of-line before the '#' and a word character after it; occurrences
// inside code spans, fenced blocks, or link URL/title portions are ignored.
// A heading line is not a hashtag, except the single-'#' single-token form,
// which doubles as a tag.
type Tags struct{}

// NewTags creates the tag extractor.
func NewTags() *Tags {
	return &Tags{}
}

// Name identifies the extractor.
func (x *Tags) Name() string { return "tags" }

// Extract returns tag elements: front-matter tags first, then body tags in
// document order.
func (x *Tags) Extract(doc *source.Document) ([]Element, error) {
	var elements []Element
	tagCount := 0

	add := func(el Element) {
		el.LocalID = localID(KindTag, tagCount)
		el.Kind = KindTag
		elements = append(elements, el)
		tagCount++
	}

	for _, key := range []string{"tags", "categories"} {
		for _, name := range doc.FrontmatterStrings(key) {
			el := Element{Text: name}
			el.SetMeta(MetaSource, TagSourceFrontmatter)
			add(el)
		}
	}

	body := doc.Body
	masked := exclusionMask(body)

	var bodyTags []Element
	bodyTags = append(bodyTags, hashtagElements(body, masked)...)
	bodyTags = append(bodyTags, categoryElements(body, masked)...)
	sort.SliceStable(bodyTags, func(i, j int) bool {
		return bodyTags[i].Span.Start < bodyTags[j].Span.Start
	})
	for _, el := range bodyTags {
		add(el)
	}

	return elements, nil
}

// hashtagElements scans for '#'-prefixed tags outside masked regions.
func hashtagElements(body string, masked []bool) []Element {
	var out []Element
	lineStart := true
	for i := 0; i < len(body); i++ {
		if body[i] == '\n' {
			lineStart = true
			continue
		}
		atStart := lineStart
		lineStart = false

		if body[i] != '#' || masked[i] {
			continue
		}
		if !atStart && !isSpaceByte(body[i-1]) {
			continue
		}

		if atStart {
			// Heading marker: a run of '#' followed by space or tab. Only
			// the one-'#' single-token form also counts as a tag.
			run := 0
			for i+run < len(body) && body[i+run] == '#' {
				run++
			}
			if i+run < len(body) && (body[i+run] == ' ' || body[i+run] == '\t') {
				if run == 1 {
					if el, ok := headingTag(body, i, i+run); ok {
						out = append(out, el)
					}
				}
				i += run
				continue
			}
		}

		j := i + 1
		for j < len(body) && isWordByte(body[j]) {
			j++
		}
		if j == i+1 {
			continue
		}
		el := Element{
			Span: Span{Start: i, End: j},
			Text: body[i+1 : j],
		}
		el.SetMeta(MetaSource, TagSourceBody)
		out = append(out, el)
		i = j - 1
	}
	return out
}

// headingTag handles the degenerate "# word" heading form: the remainder of
// the line must be exactly one token of word characters.
func headingTag(body string, hash, after int) (Element, bool) {
	end := strings.IndexByte(body[hash:], '\n')
	if end < 0 {
		end = len(body)
	} else {
		end += hash
	}
	rest := strings.TrimSpace(body[after:end])
	if rest == "" || strings.ContainsAny(rest, " \t") {
		return Element{}, false
	}
	for k := 0; k < len(rest); k++ {
		if !isWordByte(rest[k]) {
			return Element{}, false
		}
	}
	tokStart := after
	for tokStart < end && (body[tokStart] == ' ' || body[tokStart] == '\t') {
		tokStart++
	}
	el := Element{
		Span: Span{Start: tokStart, End: tokStart + len(rest)},
		Text: rest,
	}
	el.SetMeta(MetaSource, TagSourceHeading)
	return el, true
}

// categoryElements scans for @category/tag tokens. One tag per token: the
// segment after '/' names the tag, the segment before it is the category.
func categoryElements(body string, masked []bool) []Element {
	var out []Element
	for i := 0; i < len(body); i++ {
		if body[i] != '@' || masked[i] {
			continue
		}
		if i > 0 && !isSpaceByte(body[i-1]) && body[i-1] != '\n' {
			continue
		}
		j := i + 1
		for j < len(body) && isWordByte(body[j]) {
			j++
		}
		if j == i+1 || j >= len(body) || body[j] != '/' {
			continue
		}
		k := j + 1
		for k < len(body) && isWordByte(body[k]) {
			k++
		}
		if k == j+1 {
			continue
		}
		el := Element{
			Span: Span{Start: i, End: k},
			Text: body[j+1 : k],
		}
		el.SetMeta(MetaCategory, body[i+1:j])
		el.SetMeta(MetaSource, TagSourceBody)
		out = append(out, el)
		i = k - 1
	}
	return out
}

// codeMask marks body bytes inside fenced code blocks and inline code
// spans.
func codeMask(body string) []bool {
	masked := make([]bool, len(body))
	lines := splitLines(body)
	inFence := fenceMask(lines)

	markRange := func(from, to int) {
		for p := from; p < to && p < len(masked); p++ {
			masked[p] = true
		}
	}

	for i, ln := range lines {
		if inFence[i] {
			markRange(ln.start, ln.end)
			continue
		}
		for p := ln.start; p < ln.end; p++ {
			if body[p] != '`' {
				continue
			}
			rel := strings.IndexByte(body[p+1:ln.end], '`')
			if rel < 0 {
				break
			}
			markRange(p, p+1+rel+1)
			p += 1 + rel
		}
	}

	return masked
}

// exclusionMask extends codeMask with link and image URL/title portions and
// reference-definition tails, the regions where hashtags never count.
func exclusionMask(body string) []bool {
	masked := codeMask(body)
	lines := splitLines(body)
	inFence := fenceMask(lines)

	markRange := func(from, to int) {
		for p := from; p < to && p < len(masked); p++ {
			masked[p] = true
		}
	}

	for i, ln := range lines {
		if inFence[i] {
			continue
		}

		// Reference definition: [key]: url "title"
		trimmed := strings.TrimLeft(ln.text, " \t")
		if strings.HasPrefix(trimmed, "[") {
			if close := strings.Index(trimmed, "]:"); close > 0 {
				offset := ln.start + (len(ln.text) - len(trimmed))
				markRange(offset+close+1, ln.end)
			}
		}

		// Inline link/image targets: the (...) after ](.
		for p := ln.start; p+1 < ln.end; p++ {
			if body[p] != ']' || body[p+1] != '(' {
				continue
			}
			rel := strings.IndexByte(body[p+1:ln.end], ')')
			if rel < 0 {
				continue
			}
			markRange(p+1, p+1+rel+1)
			p += 1 + rel
		}
	}

	return masked
}

// isWordByte reports whether b is an ASCII letter, digit or underscore.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// isSpaceByte reports whether b is a space, tab, newline or carriage return.
func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
