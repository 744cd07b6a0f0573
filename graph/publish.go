package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/notegraph/entity"
)

// GraphIngestSubject is the stream subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// PayloadType identifies document graph payloads on the ingest stream. The
// domain/category pair matches what downstream graph consumers register,
// so payloads from this pipeline land in the same knowledge graph.
var PayloadType = message.Type{Domain: "graph", Category: "entity", Version: "v1"}

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      PayloadType.Domain,
		Category:    PayloadType.Category,
		Version:     PayloadType.Version,
		Description: "Document graph payload carrying assembled triples",
		Factory:     func() any { return &DocumentGraph{} },
	})
	if err != nil {
		panic("failed to register document graph payload: " + err.Error())
	}
}

// DocumentGraph is the wire payload for one document's assembled triples,
// keyed by the document's resolved subject IRI.
type DocumentGraph struct {
	DocumentID string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (g *DocumentGraph) EntityID() string          { return g.DocumentID }
func (g *DocumentGraph) Triples() []message.Triple { return g.TripleData }
func (g *DocumentGraph) Schema() message.Type      { return PayloadType }

func (g *DocumentGraph) Validate() error {
	if g.DocumentID == "" {
		return errors.New("document ID is required")
	}
	return nil
}

// Publisher ships assembled document graphs to the knowledge graph stream.
type Publisher struct {
	nc        *natsclient.Client
	assembler *Assembler
}

// NewPublisher creates a publisher. A nil NATS client degrades gracefully:
// publishing becomes a no-op so offline processing still works.
func NewPublisher(nc *natsclient.Client, assembler *Assembler) *Publisher {
	return &Publisher{nc: nc, assembler: assembler}
}

// PublishDocument publishes one document's entity graph. The document
// entity is expected first in the slice and keys the payload.
func (p *Publisher) PublishDocument(ctx context.Context, entities []entity.Entity) error {
	if p.nc == nil {
		return nil
	}
	if len(entities) == 0 {
		return nil
	}

	payload := DocumentGraph{
		DocumentID: p.assembler.ResolveSubject(entities[0].Common().ID),
		TripleData: p.assembler.Assemble(entities),
		UpdatedAt:  time.Now(),
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("document graph payload: %w", err)
	}

	data, err := json.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("marshal document graph: %w", err)
	}

	if err := p.nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish document graph: %w", err)
	}

	return nil
}
