package resolver

import (
	"testing"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	return New(DefaultWeights(), zap.NewNop())
}

// edgesByType is a small helper for picking edges out of a result.
func edgesByType(g *schemas.ResolvedGraph, rel schemas.RelationshipType) []schemas.Edge {
	var out []schemas.Edge
	for _, e := range g.Edges {
		if e.Type == rel {
			out = append(out, e)
		}
	}
	return out
}

func diagCodes(diags []schemas.Diagnostic) []schemas.DiagnosticCode {
	codes := make([]schemas.DiagnosticCode, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestResolveOwnership(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t)

	t.Run("core tier owner produces a single scaled ownership edge", func(t *testing.T) {
		t.Parallel()
		res := r.Resolve(schemas.EntityCollections{
			Characters: []schemas.Character{{ID: "c1", Name: "Vera", Tier: schemas.TierCore}},
			Elements:   []schemas.Element{{ID: "e1", Name: "Key", OwnerID: "c1"}},
		})

		require.Len(t, res.Graph.Edges, 1)
		edge := res.Graph.Edges[0]
		assert.Equal(t, "c1", edge.Source)
		assert.Equal(t, "e1", edge.Target)
		assert.Equal(t, schemas.RelOwnership, edge.Type)
		assert.InDelta(t, 1.5, edge.Weight, 1e-9, "core tier scales the base strength")
		assert.Empty(t, res.Diagnostics)
	})

	t.Run("unknown owner skips the edge with a warning, not an error", func(t *testing.T) {
		t.Parallel()
		res := r.Resolve(schemas.EntityCollections{
			Elements: []schemas.Element{{ID: "e1", Name: "Key", OwnerID: "nobody"}},
		})

		assert.Empty(t, res.Graph.Edges)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, schemas.CodeUnknownOwner, res.Diagnostics[0].Code)
		assert.Equal(t, schemas.SeverityWarning, res.Diagnostics[0].Severity)
	})
}

func TestResolveRequirementAndReward(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t)

	res := r.Resolve(schemas.EntityCollections{
		Elements: []schemas.Element{
			{ID: "e1", Name: "Combination"},
			{ID: "e2", Name: "Will"},
		},
		Puzzles: []schemas.Puzzle{{
			ID:               "p1",
			Name:             "Safe",
			PuzzleElementIDs: []string{"e1", "missing"},
			RewardIDs:        []string{"e2", "missing-too"},
		}},
	})

	t.Run("requirement edges flow element into puzzle", func(t *testing.T) {
		t.Parallel()
		reqs := edgesByType(res.Graph, schemas.RelRequirement)
		require.Len(t, reqs, 1)
		assert.Equal(t, "e1", reqs[0].Source)
		assert.Equal(t, "p1", reqs[0].Target)
		assert.False(t, reqs[0].Animated)
	})

	t.Run("reward edges flow puzzle to element and animate", func(t *testing.T) {
		t.Parallel()
		rewards := edgesByType(res.Graph, schemas.RelReward)
		require.Len(t, rewards, 1)
		assert.Equal(t, "p1", rewards[0].Source)
		assert.Equal(t, "e2", rewards[0].Target)
		assert.True(t, rewards[0].Animated)
	})

	t.Run("unknown ids produce one diagnostic each", func(t *testing.T) {
		t.Parallel()
		codes := diagCodes(res.Diagnostics)
		assert.Contains(t, codes, schemas.CodeUnknownRequirement)
		assert.Contains(t, codes, schemas.CodeUnknownReward)
	})
}

func TestResolveContainer(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t)

	res := r.Resolve(schemas.EntityCollections{
		Elements: []schemas.Element{
			{ID: "box", Name: "Lockbox", ContentIDs: []string{"box", "coin", "ghost"}},
			{ID: "coin", Name: "Coin"},
		},
	})

	t.Run("never emits self edges", func(t *testing.T) {
		t.Parallel()
		for _, e := range res.Graph.Edges {
			assert.NotEqual(t, e.Source, e.Target)
		}
		containers := edgesByType(res.Graph, schemas.RelContainer)
		require.Len(t, containers, 1)
		assert.Equal(t, "box", containers[0].Source)
		assert.Equal(t, "coin", containers[0].Target)
	})

	t.Run("self containment and unknown content are diagnosed", func(t *testing.T) {
		t.Parallel()
		codes := diagCodes(res.Diagnostics)
		assert.Contains(t, codes, schemas.CodeSelfContainer)
		assert.Contains(t, codes, schemas.CodeUnknownContent)
	})
}

func TestResolveTimelineAndChain(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t)

	res := r.Resolve(schemas.EntityCollections{
		Elements: []schemas.Element{{ID: "e1", Name: "Photo", TimelineEventID: "t1"}},
		Puzzles: []schemas.Puzzle{
			{ID: "p1", Name: "Cipher", SubPuzzleIDs: []string{"p2"}},
			{ID: "p2", Name: "Decode"},
		},
		Timeline: []schemas.TimelineEvent{{ID: "t1", Description: "The fire"}},
	})

	timeline := edgesByType(res.Graph, schemas.RelTimeline)
	require.Len(t, timeline, 1)
	assert.Equal(t, "e1", timeline[0].Source)
	assert.Equal(t, "t1", timeline[0].Target)

	chain := edgesByType(res.Graph, schemas.RelChain)
	require.Len(t, chain, 1)
	assert.Equal(t, "p1", chain[0].Source)
	assert.Equal(t, "p2", chain[0].Target)
}

func TestResolveDedup(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t)

	// The same (source, target, type) triple is derivable twice: the puzzle
	// lists the element under requirements twice.
	res := r.Resolve(schemas.EntityCollections{
		Elements: []schemas.Element{{ID: "e1", Name: "Key"}},
		Puzzles: []schemas.Puzzle{{
			ID:               "p1",
			Name:             "Safe",
			PuzzleElementIDs: []string{"e1", "e1"},
		}},
	})

	assert.Len(t, res.Graph.Edges, 1, "duplicate triples collapse to one edge")
}

func TestResolveDeterminism(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t)

	cols := schemas.EntityCollections{
		Characters: []schemas.Character{{ID: "c1", Name: "Vera", Tier: schemas.TierCore}},
		Elements: []schemas.Element{
			{ID: "e1", Name: "Key", OwnerID: "c1", TimelineEventID: "t1"},
			{ID: "e2", Name: "Box", ContentIDs: []string{"e1"}},
		},
		Puzzles:  []schemas.Puzzle{{ID: "p1", Name: "Safe", PuzzleElementIDs: []string{"e1"}, RewardIDs: []string{"e2"}}},
		Timeline: []schemas.TimelineEvent{{ID: "t1", Description: "The fire"}},
	}

	a := r.Resolve(cols)
	b := r.Resolve(cols)
	assert.Empty(t, cmp.Diff(a.Graph, b.Graph), "identical inputs must resolve identically")
}

func TestTransformNodes(t *testing.T) {
	t.Parallel()
	r := newTestResolver(t)

	res := r.Resolve(schemas.EntityCollections{
		Characters: []schemas.Character{
			{ID: "c1", Name: "Vera", Tier: schemas.TierCore},
			{ID: "c2", Name: ""}, // invalid: no name
		},
		Elements: []schemas.Element{{ID: "e1", Name: "Key", OwnerID: "c1"}},
	})

	require.Len(t, res.Graph.Nodes, 3)

	byID := make(map[string]schemas.Node)
	for _, n := range res.Graph.Nodes {
		byID[n.ID] = n
	}

	t.Run("node id equals entity id and metadata is populated", func(t *testing.T) {
		t.Parallel()
		n := byID["c1"]
		assert.Equal(t, schemas.NodeCharacter, n.Type)
		assert.Equal(t, schemas.KindCharacter, n.Metadata.EntityKind)
		assert.Greater(t, n.Metadata.ImportanceScore, 0.0)
		assert.NotEmpty(t, n.Metadata.VisualHints.Color)
		assert.Nil(t, n.Metadata.ErrorState)
	})

	t.Run("invalid entity still yields a node, flagged", func(t *testing.T) {
		t.Parallel()
		n := byID["c2"]
		require.NotNil(t, n.Metadata.ErrorState)
		assert.Equal(t, schemas.CodeMissingName, n.Metadata.ErrorState.Code)
		assert.Equal(t, "c2", n.Label, "label falls back to the id")
	})

	t.Run("connected nodes outrank isolated ones of the same kind", func(t *testing.T) {
		t.Parallel()
		assert.Greater(t, byID["c1"].Metadata.ImportanceScore, byID["c2"].Metadata.ImportanceScore)
	})
}
