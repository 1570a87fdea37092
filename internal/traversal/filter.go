package traversal

import (
	"strings"

	"github.com/caseboard/caseboard/api/schemas"
)

// Filter describes one filtering pass over a resolved graph. Zero-value
// fields are inactive; active criteria are intersected. Each criterion
// computes its candidate node set independently, then the graph is reduced
// to the intersection plus the configured hops of context.
type Filter struct {
	// Search keeps nodes whose label or entity name contains the term,
	// case-insensitively.
	Search string
	// Acts keeps nodes whose entity belongs to one of the listed acts.
	Acts []string
	// Tiers keeps characters of the listed tiers (other kinds pass).
	Tiers []schemas.CharacterTier
	// PuzzleID isolates one puzzle: only it and everything reachable from it
	// survive.
	PuzzleID string
	// Focus plus Depth expand the surviving set with N hops of context
	// around the focused node. Depth is ignored without a Focus.
	Focus string
	Depth int
}

// active reports whether the filter restricts anything at all.
func (f Filter) active() bool {
	return f.Search != "" || len(f.Acts) > 0 || len(f.Tiers) > 0 || f.PuzzleID != "" || f.Focus != ""
}

// Apply reduces the graph to the nodes passing every active criterion, then
// re-filters edges so both endpoints stay visible. The input graph is not
// mutated.
func (f Filter) Apply(g *schemas.ResolvedGraph) *schemas.ResolvedGraph {
	if !f.active() {
		return g
	}

	visible := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if f.matches(n) {
			visible[n.ID] = struct{}{}
		}
	}

	if f.PuzzleID != "" {
		reachable := Reachable(f.PuzzleID, g.Edges)
		intersect(visible, reachable)
	}

	if f.Focus != "" {
		context := ExpandDepth(f.Focus, g.Edges, f.Depth)
		for id := range context {
			visible[id] = struct{}{}
		}
	}

	out := &schemas.ResolvedGraph{
		Nodes: make([]schemas.Node, 0, len(visible)),
	}
	for _, n := range g.Nodes {
		if _, ok := visible[n.ID]; ok {
			out.Nodes = append(out.Nodes, n)
		}
	}
	out.Edges = PruneDanglingEdges(g.Edges, visible)
	return out
}

// matches applies the per-node attribute criteria (search, act, tier).
func (f Filter) matches(n schemas.Node) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Label), term) &&
			!strings.Contains(strings.ToLower(n.Entity.DisplayName()), term) {
			return false
		}
	}

	if len(f.Acts) > 0 && !containsString(f.Acts, entityAct(n.Entity)) {
		return false
	}

	if len(f.Tiers) > 0 {
		if c, ok := n.Entity.(schemas.Character); ok {
			found := false
			for _, tier := range f.Tiers {
				if c.Tier == tier {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	return true
}

// entityAct extracts the act field from whichever concrete kind the entity is.
func entityAct(e schemas.Entity) string {
	switch v := e.(type) {
	case schemas.Character:
		return v.Act
	case schemas.Puzzle:
		return v.Act
	case schemas.Element:
		return v.Act
	case schemas.TimelineEvent:
		return v.Act
	}
	return ""
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// intersect removes from a every key not present in b.
func intersect(a, b map[string]struct{}) {
	for id := range a {
		if _, ok := b[id]; !ok {
			delete(a, id)
		}
	}
}
