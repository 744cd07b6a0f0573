package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/notegraph/source"
	"github.com/c360studio/notegraph/source/extract"
)

func extractAll(t *testing.T, x extract.Extractor, body string) []extract.Element {
	t.Helper()
	elements, err := x.Extract(&source.Document{Path: "doc.md", Body: body})
	require.NoError(t, err)
	return elements
}

func byKind(elements []extract.Element, kind extract.Kind) []extract.Element {
	var out []extract.Element
	for _, el := range elements {
		if el.Kind == kind {
			out = append(out, el)
		}
	}
	return out
}

func TestHeadingsStackPopParents(t *testing.T) {
	levels := []int{1, 2, 3, 4, 3, 2, 1}
	var b strings.Builder
	for i, l := range levels {
		fmt.Fprintf(&b, "%s Heading %d\n", strings.Repeat("#", l), i)
	}

	elements := extractAll(t, extract.NewHeadings(), b.String())
	headings := byKind(elements, extract.KindHeading)
	require.Len(t, headings, len(levels))

	wantParents := []int{-1, 0, 1, 2, 1, 0, -1}
	for i, h := range headings {
		if wantParents[i] < 0 {
			assert.Empty(t, h.Parent, "heading %d", i)
			continue
		}
		assert.Equal(t, headings[wantParents[i]].LocalID, h.Parent, "heading %d", i)
	}
}

func TestHeadingsLevelSkipping(t *testing.T) {
	elements := extractAll(t, extract.NewHeadings(), "# Top\n\n### Deep\n")
	headings := byKind(elements, extract.KindHeading)
	require.Len(t, headings, 2)
	assert.Equal(t, 3, headings[1].MetaInt(extract.MetaLevel))
	assert.Equal(t, headings[0].LocalID, headings[1].Parent)
}

func TestHeadingsRequireSpaceAfterMarker(t *testing.T) {
	elements := extractAll(t, extract.NewHeadings(), "#nospace\n\n####### seven\n")
	assert.Empty(t, byKind(elements, extract.KindHeading))
}

func TestHeadingsIgnoreFencedCode(t *testing.T) {
	body := "# Real\n\n```\n# not a heading\n```\n"
	elements := extractAll(t, extract.NewHeadings(), body)
	headings := byKind(elements, extract.KindHeading)
	require.Len(t, headings, 1)
	assert.Equal(t, "Real", headings[0].Text)
}

func TestSectionBounds(t *testing.T) {
	body := "# One\n\nalpha\n\n## Two\n\nbeta\n\n# Three\n\ngamma\n"
	elements := extractAll(t, extract.NewHeadings(), body)

	headings := byKind(elements, extract.KindHeading)
	sections := byKind(elements, extract.KindSection)
	require.Len(t, headings, 3)
	require.Len(t, sections, 3)

	// Section one runs until the next level-1 heading, so it contains the
	// nested content too.
	assert.Equal(t, headings[0].LocalID, sections[0].Parent)
	assert.Contains(t, sections[0].Text, "alpha")
	assert.Contains(t, sections[0].Text, "beta")
	assert.NotContains(t, sections[0].Text, "gamma")

	assert.Equal(t, headings[1].LocalID, sections[1].Parent)
	assert.Equal(t, "beta", sections[1].Text)

	assert.Equal(t, headings[2].LocalID, sections[2].Parent)
	assert.Equal(t, "gamma", sections[2].Text)
}

func TestSectionAtDocumentEnd(t *testing.T) {
	elements := extractAll(t, extract.NewHeadings(), "# Only\n\ntail text")
	sections := byKind(elements, extract.KindSection)
	require.Len(t, sections, 1)
	assert.Equal(t, "tail text", sections[0].Text)
}

func TestHeadingSpansAreWellFormed(t *testing.T) {
	body := "# A\n\ntext\n\n## B\n\nmore\n"
	for _, el := range extractAll(t, extract.NewHeadings(), body) {
		assert.LessOrEqual(t, el.Span.Start, el.Span.End)
		assert.LessOrEqual(t, el.Span.End, len(body))
	}
}
