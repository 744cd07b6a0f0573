package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/notegraph/registry"
	"github.com/c360studio/notegraph/source"
	"github.com/c360studio/notegraph/source/extract"
)

func sealedRegistry(t *testing.T, entries map[string]string) *registry.Registry {
	t.Helper()
	reg := registry.New()
	for path, uri := range entries {
		require.NoError(t, reg.Register(path, uri))
	}
	reg.Seal()
	return reg
}

func TestWikiLinksResolution(t *testing.T) {
	reg := sealedRegistry(t, map[string]string{
		"adr-001": "https://notegraph.dev/kb/documents/adr-001",
	})
	x := extract.NewWikiLinks(reg)

	hit, err := x.Extract(&source.Document{Path: "doc.md", Body: "[[adr-001]]"})
	require.NoError(t, err)
	require.Len(t, hit, 1)
	assert.Equal(t, "https://notegraph.dev/kb/documents/adr-001", hit[0].Meta(extract.MetaResolvedURI))

	miss, err := x.Extract(&source.Document{Path: "doc.md", Body: "[[missing-doc]]"})
	require.NoError(t, err)
	require.Len(t, miss, 1)
	assert.Equal(t, "", miss[0].Meta(extract.MetaResolvedURI))
}

func TestWikiLinksAlias(t *testing.T) {
	elements := extractAll(t, extract.NewWikiLinks(nil), "See [[adr-001|the first ADR]] here.")
	require.Len(t, elements, 1)
	assert.Equal(t, "adr-001", elements[0].Meta(extract.MetaTarget))
	assert.Equal(t, "the first ADR", elements[0].Meta(extract.MetaAlias))
	assert.Equal(t, "[[adr-001|the first ADR]]", elements[0].Text)
}

func TestWikiLinksNonGreedyMatching(t *testing.T) {
	elements := extractAll(t, extract.NewWikiLinks(nil), "[[Not closed or [[Nested|Display]]]]")
	require.Len(t, elements, 1)
	assert.Equal(t, "Nested", elements[0].Meta(extract.MetaTarget))
	assert.Equal(t, "Display", elements[0].Meta(extract.MetaAlias))
}

func TestWikiLinksMultiple(t *testing.T) {
	elements := extractAll(t, extract.NewWikiLinks(nil), "[[one]] middle [[two|Two]] end")
	require.Len(t, elements, 2)
	assert.Equal(t, "one", elements[0].Meta(extract.MetaTarget))
	assert.Equal(t, "two", elements[1].Meta(extract.MetaTarget))
}

func TestWikiLinksUnterminated(t *testing.T) {
	assert.Empty(t, extractAll(t, extract.NewWikiLinks(nil), "[[never closed"))
}

func TestWikiLinksStemResolution(t *testing.T) {
	reg := sealedRegistry(t, map[string]string{
		"notes/adr-001.md": "https://notegraph.dev/kb/documents/notes/adr-001.md",
	})
	elements, err := extract.NewWikiLinks(reg).Extract(&source.Document{Path: "doc.md", Body: "[[notes/adr-001]]"})
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "https://notegraph.dev/kb/documents/notes/adr-001.md", elements[0].Meta(extract.MetaResolvedURI))
}

func TestWikiLinksInsideCodeIgnored(t *testing.T) {
	body := "```\n[[not-a-link]]\n```\n"
	assert.Empty(t, extractAll(t, extract.NewWikiLinks(nil), body))
}
