package storage

import (
	"testing"
	"time"

	"github.com/c360studio/notegraph/entity"
)

func TestDocumentKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		uri := "https://notegraph.dev/kb/documents/notes/plan.md"
		if DocumentKey(uri) != DocumentKey(uri) {
			t.Error("expected identical keys for identical URIs")
		}
	})

	t.Run("distinct URIs get distinct keys", func(t *testing.T) {
		a := DocumentKey("https://notegraph.dev/kb/documents/a.md")
		b := DocumentKey("https://notegraph.dev/kb/documents/b.md")
		if a == b {
			t.Errorf("expected distinct keys, both were %s", a)
		}
	})

	t.Run("key is hex and fixed length", func(t *testing.T) {
		key := DocumentKey("https://notegraph.dev/kb/documents/a.md")
		if len(key) != 64 {
			t.Errorf("expected 64-char key, got %d", len(key))
		}
		for _, c := range key {
			if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
				t.Errorf("unexpected character %q in key", c)
			}
		}
	})
}

func TestBuildDocumentRecord(t *testing.T) {
	processedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	docURI := "https://notegraph.dev/kb/documents/notes/plan.md"

	entities := []entity.Entity{
		&entity.Document{
			Base:  entity.Base{ID: docURI, Label: "Plan", CreatedAt: processedAt},
			Path:  "notes/plan.md",
			Title: "Plan",
		},
		&entity.Tag{
			Base: entity.Base{ID: docURI + "#tag-urgent", Label: "urgent"},
			Name: "urgent",
		},
		&entity.Tag{
			Base: entity.Base{ID: docURI + "#tag-urgent-2", Label: "urgent"},
			Name: "urgent",
		},
		&entity.Todo{
			Base:        entity.Base{ID: docURI + "#todo-1", Label: "ship it"},
			Description: "ship it",
			Checked:     true,
		},
		&entity.Link{
			Base:     entity.Base{ID: docURI + "#link-1", Label: "docs"},
			URL:      "https://example.org/docs",
			Text:     "docs",
			Internal: false,
		},
		&entity.WikiLink{
			Base:             entity.Base{ID: docURI + "#wiki-1", Label: "adr-001"},
			Target:           "adr-001",
			Alias:            "the decision",
			ResolvedDocument: "https://notegraph.dev/kb/documents/adr-001.md",
		},
	}

	rec, err := BuildDocumentRecord(entities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.URI != docURI {
		t.Errorf("URI = %s, want %s", rec.URI, docURI)
	}
	if rec.Title != "Plan" {
		t.Errorf("Title = %s, want Plan", rec.Title)
	}
	if rec.Path != "notes/plan.md" {
		t.Errorf("Path = %s, want notes/plan.md", rec.Path)
	}
	if !rec.ProcessedAt.Equal(processedAt) {
		t.Errorf("ProcessedAt = %v, want %v", rec.ProcessedAt, processedAt)
	}

	// Duplicate tag names collapse to one entry.
	if len(rec.Tags) != 1 || rec.Tags[0] != "urgent" {
		t.Errorf("Tags = %v, want [urgent]", rec.Tags)
	}

	if len(rec.Todos) != 1 || !rec.Todos[0].Checked || rec.Todos[0].Description != "ship it" {
		t.Errorf("Todos = %+v", rec.Todos)
	}

	if len(rec.Links) != 1 || rec.Links[0].URL != "https://example.org/docs" {
		t.Errorf("Links = %+v", rec.Links)
	}

	if len(rec.WikiLinks) != 1 {
		t.Fatalf("WikiLinks = %+v", rec.WikiLinks)
	}
	if rec.WikiLinks[0].Resolved != "https://notegraph.dev/kb/documents/adr-001.md" {
		t.Errorf("WikiLinks[0].Resolved = %s", rec.WikiLinks[0].Resolved)
	}

	// Every entity appears in the reference list, document included.
	if len(rec.Entities) != len(entities) {
		t.Errorf("Entities count = %d, want %d", len(rec.Entities), len(entities))
	}
	if rec.Entities[0].Kind != "document" {
		t.Errorf("Entities[0].Kind = %s, want document", rec.Entities[0].Kind)
	}
}

func TestBuildDocumentRecordErrors(t *testing.T) {
	t.Run("empty entity set", func(t *testing.T) {
		if _, err := BuildDocumentRecord(nil); err == nil {
			t.Error("expected error for empty entity set")
		}
	})

	t.Run("first entity not a document", func(t *testing.T) {
		entities := []entity.Entity{
			&entity.Tag{Base: entity.Base{ID: "x"}, Name: "urgent"},
		}
		if _, err := BuildDocumentRecord(entities); err == nil {
			t.Error("expected error when first entity is not a document")
		}
	})
}
