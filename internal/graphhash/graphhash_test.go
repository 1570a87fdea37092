package graphhash

import (
	"testing"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *schemas.ResolvedGraph {
	return &schemas.ResolvedGraph{
		Nodes: []schemas.Node{
			{ID: "c1", Type: schemas.NodeCharacter, Entity: schemas.Character{ID: "c1", Name: "Vera"}, Label: "Vera"},
			{ID: "e1", Type: schemas.NodeElement, Entity: schemas.Element{ID: "e1", Name: "Key", OwnerID: "c1"}, Label: "Key"},
		},
		Edges: []schemas.Edge{
			{ID: schemas.EdgeID("c1", "e1", schemas.RelOwnership), Source: "c1", Target: "e1", Type: schemas.RelOwnership, Weight: 1.5},
		},
	}
}

func TestHashOrderIndependence(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	base, err := Hash(g)
	require.NoError(t, err)

	// Same content, nodes in reverse order.
	permuted := &schemas.ResolvedGraph{
		Nodes: []schemas.Node{g.Nodes[1], g.Nodes[0]},
		Edges: g.Edges,
	}
	got, err := Hash(permuted)
	require.NoError(t, err)
	assert.Equal(t, base, got, "hash must not depend on slice order")
}

func TestHashIgnoresRenderingMetadata(t *testing.T) {
	t.Parallel()

	g := sampleGraph()
	base, err := Hash(g)
	require.NoError(t, err)

	decorated := sampleGraph()
	decorated.Nodes[0].Metadata.ImportanceScore = 99
	decorated.Nodes[0].Metadata.VisualHints = schemas.VisualHints{Size: 4, Color: "#fff"}

	got, err := Hash(decorated)
	require.NoError(t, err)
	assert.Equal(t, base, got, "importance and visual hints are not content")
}

func TestHashEdgeSensitivity(t *testing.T) {
	t.Parallel()

	base, err := Hash(sampleGraph())
	require.NoError(t, err)

	t.Run("adding an edge changes the hash", func(t *testing.T) {
		t.Parallel()
		g := sampleGraph()
		g.Edges = append(g.Edges, schemas.Edge{
			ID: schemas.EdgeID("e1", "t1", schemas.RelTimeline), Source: "e1", Target: "t1", Type: schemas.RelTimeline,
		})
		got, err := Hash(g)
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})

	t.Run("removing an edge changes the hash", func(t *testing.T) {
		t.Parallel()
		g := sampleGraph()
		g.Edges = nil
		got, err := Hash(g)
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})

	t.Run("retyping an edge changes the hash", func(t *testing.T) {
		t.Parallel()
		g := sampleGraph()
		g.Edges[0].Type = schemas.RelContainer
		g.Edges[0].ID = schemas.EdgeID("c1", "e1", schemas.RelContainer)
		got, err := Hash(g)
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	})
}

func TestHashNilGraph(t *testing.T) {
	t.Parallel()

	_, err := Hash(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnserializable)
}

func TestHashFast(t *testing.T) {
	t.Parallel()

	a, err := HashFast(sampleGraph())
	require.NoError(t, err)
	b, err := HashFast(sampleGraph())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 16, "fnv-1a 64 renders as 16 hex chars")

	g := sampleGraph()
	g.Edges = nil
	c, err := HashFast(g)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
