package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/c360studio/notegraph/source"
)

// Headings extracts ATX headings and the sections they govern.
//
// Parent assignment follows a stack of open headings: a heading of level L
// pops every open heading of level >= L; the remaining top of stack, if any,
// is its parent. Level skipping is permitted — an H3 after an H1 parents to
// the H1. A section starts immediately after its heading and ends before the
// next heading of equal-or-lower level, or at document end; its parent is
// its heading.
type Headings struct{}

// NewHeadings creates the heading/section extractor.
func NewHeadings() *Headings {
	return &Headings{}
}

// Name identifies the extractor.
func (x *Headings) Name() string { return "headings" }

// openHeading is a stack entry for parent assignment.
type openHeading struct {
	level   int
	localID string
}

// openSection tracks a section awaiting its end boundary.
type openSection struct {
	level     int
	headingID string
	start     int
}

// Extract returns headings and sections in document order.
func (x *Headings) Extract(doc *source.Document) ([]Element, error) {
	lines := splitLines(doc.Body)
	inFence := fenceMask(lines)

	var headings []Element
	var sections []Element
	var stack []openHeading
	var open []openSection
	headingCount := 0

	closeSections := func(level, end int) {
		for len(open) > 0 && open[len(open)-1].level >= level {
			sec := open[len(open)-1]
			open = open[:len(open)-1]
			if end < sec.start {
				end = sec.start
			}
			el := Element{
				Kind:   KindSection,
				Span:   Span{Start: sec.start, End: end},
				Text:   strings.TrimSpace(doc.Body[sec.start:end]),
				Parent: sec.headingID,
			}
			el.SetMeta(MetaLevel, strconv.Itoa(sec.level))
			sections = append(sections, el)
		}
	}

	for i, ln := range lines {
		if inFence[i] {
			continue
		}

		level, text, ok := parseATXHeading(ln.text)
		if !ok {
			continue
		}

		closeSections(level, ln.start)

		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}

		id := localID(KindHeading, headingCount)
		el := Element{
			LocalID: id,
			Kind:    KindHeading,
			Span:    Span{Start: ln.start, End: ln.end},
			Text:    text,
		}
		if len(stack) > 0 {
			el.Parent = stack[len(stack)-1].localID
		}
		el.SetMeta(MetaLevel, strconv.Itoa(level))
		headings = append(headings, el)
		headingCount++

		stack = append(stack, openHeading{level: level, localID: id})

		sectionStart := ln.end
		if sectionStart < len(doc.Body) {
			sectionStart++ // past the newline
		}
		open = append(open, openSection{level: level, headingID: id, start: sectionStart})
	}

	closeSections(0, len(doc.Body))

	// Interleave headings and sections back into document order. Sections
	// were emitted in close order, not open order.
	elements := make([]Element, 0, len(headings)+len(sections))
	elements = append(elements, headings...)
	elements = append(elements, sections...)
	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].Span.Start != elements[j].Span.Start {
			return elements[i].Span.Start < elements[j].Span.Start
		}
		// A heading sorts before the section it opens.
		return elements[i].Kind == KindHeading && elements[j].Kind == KindSection
	})

	order := 0
	for i := range elements {
		if elements[i].Kind == KindSection {
			elements[i].LocalID = localID(KindSection, order)
			elements[i].SetMeta(MetaOrder, strconv.Itoa(order))
			order++
		}
	}

	return elements, nil
}

// parseATXHeading parses a '#'-prefixed heading line. The marker run must be
// 1-6 '#' characters followed by at least one space or tab; anything else is
// not a heading.
func parseATXHeading(s string) (level int, text string, ok bool) {
	i := 0
	for i < len(s) && s[i] == '#' {
		i++
	}
	if i == 0 || i > 6 {
		return 0, "", false
	}
	if i >= len(s) || (s[i] != ' ' && s[i] != '\t') {
		return 0, "", false
	}
	return i, strings.TrimSpace(s[i:]), true
}
