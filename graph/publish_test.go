package graph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/notegraph/graph"
)

func TestDocumentGraphSchema(t *testing.T) {
	var g graph.DocumentGraph
	schema := g.Schema()
	assert.Equal(t, "graph", schema.Domain)
	assert.Equal(t, "entity", schema.Category)
	assert.Equal(t, "v1", schema.Version)
}

func TestDocumentGraphValidate(t *testing.T) {
	g := graph.DocumentGraph{DocumentID: testBase + "/documents/doc.md"}
	assert.NoError(t, g.Validate())

	assert.Error(t, (&graph.DocumentGraph{}).Validate())
}

func TestDocumentGraphWireShape(t *testing.T) {
	g := graph.DocumentGraph{
		DocumentID: testBase + "/documents/doc.md",
		TripleData: []message.Triple{
			{Subject: testBase + "/documents/doc.md", Predicate: "kb.entity.kind", Object: "document"},
		},
		UpdatedAt: assembledAt,
	}

	data, err := json.Marshal(&g)
	require.NoError(t, err)

	// Downstream graph consumers key on these field names.
	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Contains(t, wire, "id")
	assert.Contains(t, wire, "triples")
	assert.Contains(t, wire, "updated_at")
	assert.Equal(t, g.DocumentID, wire["id"])

	assert.Equal(t, g.DocumentID, g.EntityID())
	assert.Len(t, g.Triples(), 1)
}
