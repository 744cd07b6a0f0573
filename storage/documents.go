// Package storage persists per-document processing records in NATS KV.
// Records summarize what was extracted from each document so later runs
// and queries can consult them without reprocessing.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/notegraph/entity"
)

// BucketDocuments is the KV bucket holding document records.
const BucketDocuments = "NOTEGRAPH_DOCUMENTS"

// TodoRecord summarizes one todo found in a document.
type TodoRecord struct {
	Description string `json:"description"`
	Checked     bool   `json:"checked"`
}

// LinkRecord summarizes one link found in a document.
type LinkRecord struct {
	URL      string `json:"url"`
	Text     string `json:"text,omitempty"`
	Internal bool   `json:"internal"`
}

// WikiLinkRecord summarizes one wiki-style link found in a document.
type WikiLinkRecord struct {
	Target   string `json:"target"`
	Alias    string `json:"alias,omitempty"`
	Resolved string `json:"resolved,omitempty"`
}

// EntityRecord is one extracted entity reference.
type EntityRecord struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// DocumentRecord is the stored summary of one processed document.
type DocumentRecord struct {
	URI         string           `json:"uri"`
	Path        string           `json:"path"`
	Title       string           `json:"title"`
	Tags        []string         `json:"tags,omitempty"`
	Todos       []TodoRecord     `json:"todos,omitempty"`
	Links       []LinkRecord     `json:"links,omitempty"`
	WikiLinks   []WikiLinkRecord `json:"wiki_links,omitempty"`
	Entities    []EntityRecord   `json:"entities,omitempty"`
	ProcessedAt time.Time        `json:"processed_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BuildDocumentRecord summarizes a processed entity set into a record.
// The first entity is expected to be the document itself.
func BuildDocumentRecord(entities []entity.Entity) (*DocumentRecord, error) {
	if len(entities) == 0 {
		return nil, errors.New("no entities to record")
	}
	doc, ok := entities[0].(*entity.Document)
	if !ok {
		return nil, fmt.Errorf("first entity is %T, expected document", entities[0])
	}

	rec := &DocumentRecord{
		URI:         doc.Common().ID,
		Path:        doc.Path,
		Title:       doc.Title,
		ProcessedAt: doc.Common().CreatedAt,
	}

	seenTags := make(map[string]bool)
	for _, e := range entities {
		base := e.Common()
		rec.Entities = append(rec.Entities, EntityRecord{
			ID:    base.ID,
			Kind:  string(e.Kind()),
			Label: base.Label,
		})

		switch v := e.(type) {
		case *entity.Tag:
			if !seenTags[v.Name] {
				seenTags[v.Name] = true
				rec.Tags = append(rec.Tags, v.Name)
			}
		case *entity.Todo:
			rec.Todos = append(rec.Todos, TodoRecord{
				Description: v.Description,
				Checked:     v.Checked,
			})
		case *entity.Link:
			rec.Links = append(rec.Links, LinkRecord{
				URL:      v.URL,
				Text:     v.Text,
				Internal: v.Internal,
			})
		case *entity.WikiLink:
			rec.WikiLinks = append(rec.WikiLinks, WikiLinkRecord{
				Target:   v.Target,
				Alias:    v.Alias,
				Resolved: v.ResolvedDocument,
			})
		}
	}

	return rec, nil
}

// Store provides document record storage backed by NATS KV.
type Store struct {
	documents jetstream.KeyValue
}

// NewStore creates a Store with the given JetStream context, creating
// the KV bucket if it doesn't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	documents, err := getOrCreateBucket(ctx, js, BucketDocuments)
	if err != nil {
		return nil, fmt.Errorf("create documents bucket: %w", err)
	}
	return &Store{documents: documents}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Notegraph document records",
		History:     5, // Keep last 5 revisions
	})
}

// Put stores or replaces the record for a document.
func (s *Store) Put(ctx context.Context, rec *DocumentRecord) error {
	if rec.URI == "" {
		return errors.New("document record missing URI")
	}
	rec.UpdatedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal document record: %w", err)
	}

	if _, err := s.documents.Put(ctx, DocumentKey(rec.URI), data); err != nil {
		return fmt.Errorf("store document record: %w", err)
	}
	return nil
}

// Get retrieves the record for a document URI.
func (s *Store) Get(ctx context.Context, uri string) (*DocumentRecord, error) {
	entry, err := s.documents.Get(ctx, DocumentKey(uri))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document record: %w", err)
	}

	var rec DocumentRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal document record: %w", err)
	}
	return &rec, nil
}

// Delete removes the record for a document URI.
func (s *Store) Delete(ctx context.Context, uri string) error {
	if err := s.documents.Delete(ctx, DocumentKey(uri)); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete document record: %w", err)
	}
	return nil
}

// List returns all stored document records.
func (s *Store) List(ctx context.Context) ([]*DocumentRecord, error) {
	keys, err := s.documents.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list document keys: %w", err)
	}

	records := make([]*DocumentRecord, 0, len(keys))
	for _, key := range keys {
		entry, err := s.documents.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var rec DocumentRecord
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}

	return records, nil
}

// FindByTag returns all document records carrying the given tag.
func (s *Store) FindByTag(ctx context.Context, tag string) ([]*DocumentRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*DocumentRecord, 0)
	for _, rec := range records {
		for _, t := range rec.Tags {
			if t == tag {
				matched = append(matched, rec)
				break
			}
		}
	}
	return matched, nil
}

// DocumentKey derives the KV key for a document URI. URIs contain
// characters NATS keys forbid, so records are keyed by content hash.
func DocumentKey(uri string) string {
	sum := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])
}
