package schemas

import "fmt"

// -- Graph Data Model --

// NodeType mirrors EntityKind for rendering purposes. Node types are
// lowercase because the front end uses them directly as CSS-ish hints.
type NodeType string

const (
	NodeCharacter NodeType = "character"
	NodePuzzle    NodeType = "puzzle"
	NodeElement   NodeType = "element"
	NodeTimeline  NodeType = "timeline"
)

// RelationshipType defines the semantic type of an edge between two nodes.
type RelationshipType string

const (
	RelOwnership   RelationshipType = "ownership"   // Character -> Element: the character holds the element.
	RelRequirement RelationshipType = "requirement" // Element -> Puzzle: the element flows into the puzzle.
	RelReward      RelationshipType = "reward"      // Puzzle -> Element: solving the puzzle grants the element.
	RelTimeline    RelationshipType = "timeline"    // Element -> TimelineEvent: the element evidences the event.
	RelContainer   RelationshipType = "container"   // Element -> Element: the source contains the target.
	RelChain       RelationshipType = "chain"       // Puzzle -> Puzzle: the source unlocks the target.
)

// VisualHints are produced by the resolver and consumed by rendering. The
// core computes them but never interprets them.
type VisualHints struct {
	Size  int    `json:"size"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// NodeError records a validation failure on the source entity. The node is
// still emitted so the UI can render it distinctly.
type NodeError struct {
	Code    DiagnosticCode `json:"code"`
	Message string         `json:"message"`
}

// NodeMetadata carries ranking and rendering data alongside a node.
type NodeMetadata struct {
	EntityKind      EntityKind  `json:"entity_kind"`
	ImportanceScore float64     `json:"importance_score"`
	VisualHints     VisualHints `json:"visual_hints"`
	ErrorState      *NodeError  `json:"error_state,omitempty"`
}

// Node is a vertex of the resolved graph. Nodes are created once per resolver
// run and are immutable afterwards; ID always equals the source entity ID.
type Node struct {
	ID       string       `json:"id"`
	Type     NodeType     `json:"type"`
	Entity   Entity       `json:"entity"`
	Label    string       `json:"label"`
	Metadata NodeMetadata `json:"metadata"`
}

// Edge is a directed, typed relationship between two nodes.
//
// Invariants: Source != Target, and the (Source, Target, Type) triple is
// unique within any resolver output.
type Edge struct {
	ID       string           `json:"id"`
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Type     RelationshipType `json:"type"`
	Weight   float64          `json:"weight"`
	Label    string           `json:"label,omitempty"`
	Animated bool             `json:"animated,omitempty"`
}

// EdgeID derives the deterministic edge identifier from its defining triple.
// Deduplication relies on this being a pure function of the triple.
func EdgeID(source, target string, relType RelationshipType) string {
	return fmt.Sprintf("%s-%s-%s", relType, source, target)
}

// ResolvedGraph is the resolver's output: nodes and edges, no positions.
// It is produced fresh per invocation and never mutated by the cache.
type ResolvedGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Position is a 2D layout coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionedNode is a node plus its computed layout position.
type PositionedNode struct {
	Node
	Position Position `json:"position"`
}

// GraphData is a positioned graph, the unit stored by the layout cache and
// handed to rendering.
type GraphData struct {
	Nodes []PositionedNode `json:"nodes"`
	Edges []Edge           `json:"edges"`
}

// LayoutConfig is the opaque configuration bag passed through to the layout
// engine. The core reads only Algorithm (for cache keying); everything else
// is the engine's business.
type LayoutConfig struct {
	Algorithm string         `json:"algorithm"`
	Direction string         `json:"direction,omitempty"`
	Spacing   float64        `json:"spacing,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}
