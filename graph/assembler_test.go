package graph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/notegraph/entity"
	"github.com/c360studio/notegraph/graph"
	"github.com/c360studio/notegraph/vocabulary/kb"
)

const testBase = "https://notegraph.dev/kb"

var assembledAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testBaseEntity(id, label string) entity.Base {
	return entity.Base{
		ID:             id,
		Label:          label,
		SourceDocument: testBase + "/documents/doc.md",
		CreatedAt:      assembledAt,
		UpdatedAt:      assembledAt,
	}
}

func findObjects(triples []message.Triple, subject, predicate string) []any {
	var out []any
	for _, tr := range triples {
		if tr.Subject == subject && tr.Predicate == predicate {
			out = append(out, tr.Object)
		}
	}
	return out
}

func TestResolveSubject(t *testing.T) {
	a := graph.NewAssembler(testBase)
	assert.Equal(t, "https://other.example/x", a.ResolveSubject("https://other.example/x"))
	assert.Equal(t, testBase+"/documents/a.md", a.ResolveSubject("documents/a.md"))
	assert.Equal(t, testBase+"/documents/a.md", a.ResolveSubject("/documents/a.md"))
}

func TestAssembleCommonStatements(t *testing.T) {
	a := graph.NewAssembler(testBase)
	subject := testBase + "/documents/doc.md/heading/intro"

	heading := &entity.Heading{
		Base:  testBaseEntity(subject, "Intro"),
		Level: 2,
		Text:  "Intro",
	}
	heading.Span = &entity.Span{Start: 10, End: 18}

	triples := a.Assemble([]entity.Entity{heading})

	assert.Equal(t, []any{"heading"}, findObjects(triples, subject, kb.EntityKind))
	assert.Equal(t, []any{"Intro"}, findObjects(triples, subject, kb.EntityLabel))
	assert.Equal(t, []any{2}, findObjects(triples, subject, kb.HeadingLevel))
	assert.Equal(t, []any{10}, findObjects(triples, subject, kb.EntitySpanStart))
	assert.Equal(t, []any{18}, findObjects(triples, subject, kb.EntitySpanEnd))
	assert.Equal(t, []any{"2025-06-01T12:00:00Z"}, findObjects(triples, subject, kb.EntityCreatedAt))

	for _, tr := range triples {
		assert.Equal(t, "notegraph.processor", tr.Source)
		assert.Equal(t, 1.0, tr.Confidence)
	}
}

func TestAssembleSectionHeadingRelation(t *testing.T) {
	a := graph.NewAssembler(testBase)
	headingID := testBase + "/documents/doc.md/heading/intro"
	sectionID := testBase + "/documents/doc.md/section/section-0"

	section := &entity.Section{Base: testBaseEntity(sectionID, "body"), Order: 0, Level: 1}
	section.Parent = headingID

	triples := a.Assemble([]entity.Entity{section})
	assert.Equal(t, []any{headingID}, findObjects(triples, sectionID, kb.SectionHeading))
	assert.Equal(t, []any{headingID}, findObjects(triples, sectionID, kb.ElementParent))
}

func TestAssembleTodoStatements(t *testing.T) {
	a := graph.NewAssembler(testBase)
	todoID := testBase + "/documents/doc.md/todo/fix-the-bug"
	assignee := testBase + "/people/ada"

	todo := &entity.Todo{
		Base:        testBaseEntity(todoID, "Fix the bug"),
		Description: "Fix the bug",
		Checked:     true,
		Priority:    "high",
		Assignees:   []string{assignee},
	}

	triples := a.Assemble([]entity.Entity{todo})
	assert.Equal(t, []any{"Fix the bug"}, findObjects(triples, todoID, kb.TodoDescription))
	assert.Equal(t, []any{true}, findObjects(triples, todoID, kb.TodoChecked))
	assert.Equal(t, []any{"high"}, findObjects(triples, todoID, kb.TodoPriority))
	assert.Equal(t, []any{assignee}, findObjects(triples, todoID, kb.TodoAssignee))
}

func TestAssembleWikiLinkCrossReference(t *testing.T) {
	a := graph.NewAssembler(testBase)
	linkID := testBase + "/documents/doc.md/wikilink/adr-001"
	target := testBase + "/documents/adr-001.md"

	wl := &entity.WikiLink{
		Base:             testBaseEntity(linkID, "[[adr-001]]"),
		Target:           "adr-001",
		Literal:          "[[adr-001]]",
		ResolvedDocument: target,
	}

	triples := a.Assemble([]entity.Entity{wl})
	assert.Equal(t, []any{target}, findObjects(triples, linkID, kb.WikiLinkResolved))
	assert.Equal(t, []any{"adr-001"}, findObjects(triples, linkID, kb.WikiLinkTarget))
}

func TestAssembleUnresolvedWikiLinkOmitsResolution(t *testing.T) {
	a := graph.NewAssembler(testBase)
	linkID := testBase + "/documents/doc.md/wikilink/missing"

	wl := &entity.WikiLink{
		Base:    testBaseEntity(linkID, "[[missing]]"),
		Target:  "missing",
		Literal: "[[missing]]",
	}

	triples := a.Assemble([]entity.Entity{wl})
	assert.Empty(t, findObjects(triples, linkID, kb.WikiLinkResolved))
}

func TestAssemblePersonStatements(t *testing.T) {
	a := graph.NewAssembler(testBase)
	personID := testBase + "/documents/doc.md/person/ada-lovelace"

	person := &entity.Person{
		Base:    testBaseEntity(personID, "Ada Lovelace"),
		Name:    "Ada Lovelace",
		Aliases: []string{"A. Lovelace"},
	}

	triples := a.Assemble([]entity.Entity{person})
	assert.Equal(t, []any{"person"}, findObjects(triples, personID, kb.EntityKind))
	assert.Equal(t, []any{"Ada Lovelace"}, findObjects(triples, personID, kb.PersonName))
	assert.Equal(t, []any{"A. Lovelace"}, findObjects(triples, personID, kb.PersonAlias))
}

func TestAssembleEveryVariantEmitsKind(t *testing.T) {
	a := graph.NewAssembler(testBase)
	mk := func(id string) entity.Base { return testBaseEntity(testBase+"/x/"+id, id) }

	entities := []entity.Entity{
		&entity.Document{Base: mk("d"), Path: "doc.md"},
		&entity.Heading{Base: mk("h"), Level: 1},
		&entity.Section{Base: mk("s")},
		&entity.List{Base: mk("l")},
		&entity.ListItem{Base: mk("li")},
		&entity.Table{Base: mk("t"), Rows: 1, Columns: 1},
		&entity.CodeBlock{Base: mk("c")},
		&entity.Blockquote{Base: mk("q"), Depth: 1},
		&entity.Todo{Base: mk("td")},
		&entity.Tag{Base: mk("tg"), Name: "x"},
		&entity.Link{Base: mk("ln"), LinkKind: "inline"},
		&entity.WikiLink{Base: mk("wl"), Target: "x"},
		&entity.NamedEntity{Base: mk("ne"), Text: "x"},
		&entity.Person{Base: mk("p"), Name: "x"},
	}

	triples := a.Assemble(entities)

	kinds := make(map[string]bool)
	for _, tr := range triples {
		if tr.Predicate == kb.EntityKind {
			kinds[tr.Object.(string)] = true
		}
	}
	require.Len(t, kinds, 14)
}
