package processor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/notegraph/entity"
	"github.com/c360studio/notegraph/processor"
	"github.com/c360studio/notegraph/recognize"
	"github.com/c360studio/notegraph/source"
	"github.com/c360studio/notegraph/source/extract"
)

const testNamespace = "https://notegraph.dev/kb"

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newProcessor(opts ...processor.Option) *processor.Processor {
	opts = append(opts, processor.WithClock(func() time.Time { return fixedTime }))
	return processor.New(testNamespace, extract.DefaultExtractors(nil), opts...)
}

func entitiesOfKind[T entity.Entity](entities []entity.Entity) []T {
	var out []T
	for _, e := range entities {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func TestProcessTitleFromFrontmatter(t *testing.T) {
	doc := &source.Document{
		Path:        "notes/meeting-notes.md",
		Frontmatter: map[string]any{"title": "Weekly Sync"},
		Body:        "content",
	}
	result, err := newProcessor().Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Sync", result.Document.Title)
}

func TestProcessTitleFromParserIsKept(t *testing.T) {
	// HTML ingestion sets Title before processing; the filename fallback
	// must not clobber it.
	doc := &source.Document{
		Path:  "notes/release.html",
		Title: "Release Notes for v2.0",
		Body:  "# Release Notes\n\ncontent",
	}
	result, err := newProcessor().Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Release Notes for v2.0", result.Document.Title)
}

func TestProcessTitleFrontmatterBeatsParser(t *testing.T) {
	doc := &source.Document{
		Path:        "notes/release.html",
		Title:       "Page Title",
		Frontmatter: map[string]any{"title": "Canonical Title"},
		Body:        "content",
	}
	result, err := newProcessor().Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Canonical Title", result.Document.Title)
}

func TestProcessTitleFromFilename(t *testing.T) {
	doc := &source.Document{Path: "notes/meeting_notes-2025.md", Body: "content"}
	result, err := newProcessor().Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "meeting notes 2025", result.Document.Title)
}

func TestProcessEndToEndScenario(t *testing.T) {
	doc := &source.Document{
		Path: "doc1.md",
		Body: "# Title\n\n- [ ] Task A\n- [x] Task B\n\n#urgent",
	}
	result, err := newProcessor().Process(context.Background(), doc)
	require.NoError(t, err)

	headings := entitiesOfKind[*entity.Heading](result.Entities)
	require.Len(t, headings, 1)
	assert.Equal(t, 1, headings[0].Level)
	assert.Equal(t, "Title", headings[0].Text)

	sections := entitiesOfKind[*entity.Section](result.Entities)
	require.Len(t, sections, 1)
	assert.Equal(t, headings[0].ID, sections[0].Parent)

	todos := entitiesOfKind[*entity.Todo](result.Entities)
	require.Len(t, todos, 2)
	assert.Equal(t, "Task A", todos[0].Description)
	assert.False(t, todos[0].Checked)
	assert.Equal(t, "Task B", todos[1].Description)
	assert.True(t, todos[1].Checked)

	tags := entitiesOfKind[*entity.Tag](result.Entities)
	require.Len(t, tags, 1)
	assert.Equal(t, "urgent", tags[0].Name)

	for _, e := range result.Entities {
		assert.NotEmpty(t, e.Common().ID)
	}
}

func TestProcessDeterministicIdentifiers(t *testing.T) {
	body := "# Title\n\n- [ ] Fix  the   bug!\n"
	first, err := newProcessor().Process(context.Background(), &source.Document{Path: "a.md", Body: body})
	require.NoError(t, err)
	second, err := newProcessor().Process(context.Background(), &source.Document{Path: "a.md", Body: body})
	require.NoError(t, err)

	require.Equal(t, len(first.Entities), len(second.Entities))
	for i := range first.Entities {
		assert.Equal(t, first.Entities[i].Common().ID, second.Entities[i].Common().ID)
	}
}

func TestProcessTodoNormalizationSharesIdentifier(t *testing.T) {
	a, err := newProcessor().Process(context.Background(), &source.Document{
		Path: "doc.md", Body: "- [ ] Fix  the   bug!\n",
	})
	require.NoError(t, err)
	b, err := newProcessor().Process(context.Background(), &source.Document{
		Path: "doc.md", Body: "- [ ] fix the bug\n",
	})
	require.NoError(t, err)

	todosA := entitiesOfKind[*entity.Todo](a.Entities)
	todosB := entitiesOfKind[*entity.Todo](b.Entities)
	require.Len(t, todosA, 1)
	require.Len(t, todosB, 1)
	assert.Equal(t, todosA[0].ID, todosB[0].ID)
}

type failingExtractor struct{}

func (f *failingExtractor) Name() string { return "failing" }
func (f *failingExtractor) Extract(*source.Document) ([]extract.Element, error) {
	return nil, errors.New("synthetic failure")
}

func TestProcessExtractorFailureIsRecovered(t *testing.T) {
	extractors := append([]extract.Extractor{&failingExtractor{}}, extract.DefaultExtractors(nil)...)
	proc := processor.New(testNamespace, extractors,
		processor.WithClock(func() time.Time { return fixedTime }))

	result, err := proc.Process(context.Background(), &source.Document{
		Path: "doc.md",
		Body: "# Heading\n",
	})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "failing")

	headings := entitiesOfKind[*entity.Heading](result.Entities)
	assert.Len(t, headings, 1)
}

func TestProcessAllExtractorsFailingFailsDocument(t *testing.T) {
	proc := processor.New(testNamespace, []extract.Extractor{&failingExtractor{}})
	_, err := proc.Process(context.Background(), &source.Document{Path: "doc.md", Body: "x"})
	assert.Error(t, err)
}

type erroringRecognizer struct{}

func (e *erroringRecognizer) Recognize(context.Context, string) ([]recognize.Span, error) {
	return nil, errors.New("model unavailable")
}

func TestProcessRecognitionFailureIsNotFatal(t *testing.T) {
	proc := newProcessor(processor.WithRecognizer(&erroringRecognizer{}))
	result, err := proc.Process(context.Background(), &source.Document{
		Path: "doc.md",
		Body: "Ada Lovelace wrote programs.\n",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, entitiesOfKind[*entity.NamedEntity](result.Entities))
}

func TestProcessRecognizedEntitiesDeduplicated(t *testing.T) {
	body := "Ada met Ada in London.\n"
	static := &recognize.Static{Results: map[string][]recognize.Span{
		body: {
			{Text: "Ada", Label: "person", Start: 0, End: 3},
			{Text: "Ada", Label: "person", Start: 8, End: 11},
			{Text: "London", Label: "place", Start: 19, End: 25},
		},
	}}

	proc := newProcessor(processor.WithRecognizer(static))
	result, err := proc.Process(context.Background(), &source.Document{Path: "doc.md", Body: body})
	require.NoError(t, err)

	persons := entitiesOfKind[*entity.Person](result.Entities)
	require.Len(t, persons, 1)
	assert.Equal(t, "Ada", persons[0].Name)

	named := entitiesOfKind[*entity.NamedEntity](result.Entities)
	require.Len(t, named, 1)
	assert.Equal(t, "London", named[0].Text)
	assert.Equal(t, "place", named[0].NERLabel)
}

func TestProcessWikiLinkAliasRecognition(t *testing.T) {
	body := "See [[ada-profile|Ada Lovelace]] for background.\n"
	static := &recognize.Static{Results: map[string][]recognize.Span{
		"Ada Lovelace": {{Text: "Ada Lovelace", Label: "person", Start: 0, End: 12}},
	}}

	proc := newProcessor(processor.WithRecognizer(static))
	result, err := proc.Process(context.Background(), &source.Document{Path: "doc.md", Body: body})
	require.NoError(t, err)

	wikiLinks := entitiesOfKind[*entity.WikiLink](result.Entities)
	require.Len(t, wikiLinks, 1)
	require.Len(t, wikiLinks[0].Entities, 1)
	assert.Equal(t, "Ada Lovelace", wikiLinks[0].Entities[0].Text)
}

func TestProcessTitleHeadingTagDropped(t *testing.T) {
	// A single-word heading in title position names the document rather
	// than tagging it.
	result, err := newProcessor().Process(context.Background(), &source.Document{
		Path: "urgent.md",
		Body: "# urgent\n\nbody text\n",
	})
	require.NoError(t, err)
	assert.Empty(t, entitiesOfKind[*entity.Tag](result.Entities))

	// The same single-word heading past the first heading stays a tag.
	other, err := newProcessor().Process(context.Background(), &source.Document{
		Path: "notes.md",
		Body: "# My Notes\n\ncontent\n\n# urgent\n\nmore\n",
	})
	require.NoError(t, err)
	tags := entitiesOfKind[*entity.Tag](other.Entities)
	require.Len(t, tags, 1)
	assert.Equal(t, "urgent", tags[0].Name)
}

func TestProcessDocumentEntityFirst(t *testing.T) {
	result, err := newProcessor().Process(context.Background(), &source.Document{
		Path: "doc.md",
		Body: "# Heading\n",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Entities)

	docEntity, ok := result.Entities[0].(*entity.Document)
	require.True(t, ok)
	assert.Equal(t, result.Document.URI, docEntity.ID)
	assert.Equal(t, "doc", docEntity.Title)
}
