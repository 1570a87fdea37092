package layouts

import (
	"context"
	"testing"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeNodeGraph() *schemas.ResolvedGraph {
	var nodes []schemas.Node
	for _, id := range []string{"a", "b", "c"} {
		nodes = append(nodes, schemas.Node{
			ID: id, Type: schemas.NodeElement,
			Entity: schemas.Element{ID: id, Name: id}, Label: id,
		})
	}
	return &schemas.ResolvedGraph{
		Nodes: nodes,
		Edges: []schemas.Edge{{ID: "x", Source: "a", Target: "b", Type: schemas.RelContainer}},
	}
}

func TestGridCompute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	g := threeNodeGraph()

	out, err := Grid{}.Compute(ctx, g, schemas.LayoutConfig{Algorithm: "grid", Spacing: 100})
	require.NoError(t, err)
	require.Len(t, out.Nodes, 3)
	assert.Len(t, out.Edges, 1)

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()
		again, err := Grid{}.Compute(ctx, g, schemas.LayoutConfig{Algorithm: "grid", Spacing: 100})
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(out, again))
	})

	t.Run("does not mutate the input graph", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, g.Nodes, 3)
		assert.Equal(t, "a", g.Nodes[0].ID)
	})
}

func TestCircleCompute(t *testing.T) {
	t.Parallel()

	out, err := Circle{}.Compute(context.Background(), threeNodeGraph(), schemas.LayoutConfig{Algorithm: "circle"})
	require.NoError(t, err)
	require.Len(t, out.Nodes, 3)

	// All nodes sit on the same ring.
	r0 := out.Nodes[0].Position.X*out.Nodes[0].Position.X + out.Nodes[0].Position.Y*out.Nodes[0].Position.Y
	r1 := out.Nodes[1].Position.X*out.Nodes[1].Position.X + out.Nodes[1].Position.Y*out.Nodes[1].Position.Y
	assert.InDelta(t, r0, r1, 1e-6)
}

func TestComputeHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Grid{}.Compute(ctx, threeNodeGraph(), schemas.LayoutConfig{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForAlgorithm(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "grid", "circle"} {
		engine, err := ForAlgorithm(name)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	}

	_, err := ForAlgorithm("force")
	assert.Error(t, err, "force-directed layout is an external collaborator")
}
