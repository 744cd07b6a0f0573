package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/notegraph/source/extract"
)

func TestBlockquotesMergeSameDepth(t *testing.T) {
	body := "> first line\n> second line\n"
	elements := extractAll(t, extract.NewBlockquotes(), body)
	require.Len(t, elements, 1)
	assert.Equal(t, 1, elements[0].MetaInt(extract.MetaLevel))
	assert.Equal(t, "first line\nsecond line", elements[0].Text)
}

func TestBlockquotesDepthChangeSplits(t *testing.T) {
	body := "> outer\n> > inner\n> outer again\n"
	elements := extractAll(t, extract.NewBlockquotes(), body)
	require.Len(t, elements, 3)
	assert.Equal(t, 1, elements[0].MetaInt(extract.MetaLevel))
	assert.Equal(t, 2, elements[1].MetaInt(extract.MetaLevel))
	assert.Equal(t, 1, elements[2].MetaInt(extract.MetaLevel))
	assert.Equal(t, "inner", elements[1].Text)
}

func TestBlockquotesPlainLineEnds(t *testing.T) {
	body := "> quoted\nplain\n> quoted again\n"
	elements := extractAll(t, extract.NewBlockquotes(), body)
	require.Len(t, elements, 2)
	assert.Equal(t, "quoted", elements[0].Text)
	assert.Equal(t, "quoted again", elements[1].Text)
}

func TestBlockquotesCompactMarkers(t *testing.T) {
	body := ">> tight\n"
	elements := extractAll(t, extract.NewBlockquotes(), body)
	require.Len(t, elements, 1)
	assert.Equal(t, 2, elements[0].MetaInt(extract.MetaLevel))
	assert.Equal(t, "tight", elements[0].Text)
}
