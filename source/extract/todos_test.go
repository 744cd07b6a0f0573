package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/notegraph/source/extract"
)

func TestTodosCheckedStates(t *testing.T) {
	body := "- [ ] open task\n- [x] done task\n- [X] also done\n"
	elements := extractAll(t, extract.NewTodos(), body)
	require.Len(t, elements, 3)

	assert.False(t, elements[0].MetaBool(extract.MetaChecked))
	assert.Equal(t, "open task", elements[0].Text)
	assert.True(t, elements[1].MetaBool(extract.MetaChecked))
	assert.Equal(t, "done task", elements[1].Text)
	assert.True(t, elements[2].MetaBool(extract.MetaChecked))
}

func TestTodosIndentedItemsStillCount(t *testing.T) {
	body := "  - [ ] two spaces\n\t- [x] tabbed\n    - [ ] deeper\n"
	elements := extractAll(t, extract.NewTodos(), body)
	require.Len(t, elements, 3)
}

func TestTodosPlainListItemsExcluded(t *testing.T) {
	body := "- plain item\n- [y] bad marker\n- [] missing space\n"
	assert.Empty(t, extractAll(t, extract.NewTodos(), body))
}

func TestTodosNumberedListForm(t *testing.T) {
	body := "1. [ ] numbered task\n"
	elements := extractAll(t, extract.NewTodos(), body)
	require.Len(t, elements, 1)
	assert.Equal(t, "numbered task", elements[0].Text)
}
