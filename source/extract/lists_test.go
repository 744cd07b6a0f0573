package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/notegraph/source/extract"
)

func TestListsUnordered(t *testing.T) {
	elements := extractAll(t, extract.NewLists(), "- one\n- two\n- three\n")

	lists := byKind(elements, extract.KindList)
	items := byKind(elements, extract.KindListItem)
	require.Len(t, lists, 1)
	require.Len(t, items, 3)

	assert.False(t, lists[0].MetaBool(extract.MetaOrdered))
	assert.Equal(t, 3, lists[0].MetaInt(extract.MetaItemCount))
	for i, want := range []string{"one", "two", "three"} {
		assert.Equal(t, want, items[i].Text)
		assert.Equal(t, lists[0].LocalID, items[i].Parent)
	}
}

func TestListsOrdered(t *testing.T) {
	elements := extractAll(t, extract.NewLists(), "1. first\n2. second\n10. tenth\n")

	lists := byKind(elements, extract.KindList)
	require.Len(t, lists, 1)
	assert.True(t, lists[0].MetaBool(extract.MetaOrdered))
	assert.Equal(t, 3, lists[0].MetaInt(extract.MetaItemCount))
}

func TestListsNestingByIndentation(t *testing.T) {
	body := "- top\n  - two spaces\n\t- tab\n    - four spaces\n"
	items := byKind(extractAll(t, extract.NewLists(), body), extract.KindListItem)
	require.Len(t, items, 4)

	assert.Equal(t, 0, items[0].MetaInt(extract.MetaLevel))
	assert.Equal(t, 1, items[1].MetaInt(extract.MetaLevel))
	assert.Equal(t, 1, items[2].MetaInt(extract.MetaLevel))
	assert.Equal(t, 2, items[3].MetaInt(extract.MetaLevel))
}

func TestListsBlankLineSplitsBlocks(t *testing.T) {
	body := "- a\n- b\n\n- c\n"
	lists := byKind(extractAll(t, extract.NewLists(), body), extract.KindList)
	require.Len(t, lists, 2)
	assert.Equal(t, 2, lists[0].MetaInt(extract.MetaItemCount))
	assert.Equal(t, 1, lists[1].MetaInt(extract.MetaItemCount))
}

func TestListsMarkerVariants(t *testing.T) {
	body := "* star\n+ plus\n"
	items := byKind(extractAll(t, extract.NewLists(), body), extract.KindListItem)
	require.Len(t, items, 2)
	assert.Equal(t, "star", items[0].Text)
	assert.Equal(t, "plus", items[1].Text)
}

func TestListsIgnoreNonListLines(t *testing.T) {
	elements := extractAll(t, extract.NewLists(), "plain text\n-not a list\n1.also not\n")
	assert.Empty(t, elements)
}
