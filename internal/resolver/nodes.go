package resolver

import (
	"github.com/caseboard/caseboard/api/schemas"
)

// nodeTypeFor maps an entity kind to its rendering node type.
func nodeTypeFor(kind schemas.EntityKind) schemas.NodeType {
	switch kind {
	case schemas.KindCharacter:
		return schemas.NodeCharacter
	case schemas.KindPuzzle:
		return schemas.NodePuzzle
	case schemas.KindElement:
		return schemas.NodeElement
	default:
		return schemas.NodeTimeline
	}
}

// Kind-specific rendering defaults. The core produces hints; only the front
// end interprets them.
var kindColors = map[schemas.EntityKind]string{
	schemas.KindCharacter:     "#e15759",
	schemas.KindPuzzle:        "#4e79a7",
	schemas.KindElement:       "#f28e2b",
	schemas.KindTimelineEvent: "#76b7b2",
}

var kindIcons = map[schemas.EntityKind]string{
	schemas.KindCharacter:     "person",
	schemas.KindPuzzle:        "extension",
	schemas.KindElement:       "inventory",
	schemas.KindTimelineEvent: "schedule",
}

// transformNodes creates one node per entity, in collection order. Validation
// failures flag the node via ErrorState instead of dropping it, so one bad
// entity can never abort the batch.
func (r *Resolver) transformNodes(cols schemas.EntityCollections, edges []schemas.Edge) []schemas.Node {
	degree := make(map[string]int, len(edges)*2)
	for _, e := range edges {
		degree[e.Source]++
		degree[e.Target]++
	}

	total := len(cols.Characters) + len(cols.Puzzles) + len(cols.Elements) + len(cols.Timeline)
	nodes := make([]schemas.Node, 0, total)

	add := func(e schemas.Entity) {
		nodes = append(nodes, r.buildNode(e, degree[e.EntityID()]))
	}
	for _, c := range cols.Characters {
		add(c)
	}
	for _, el := range cols.Elements {
		add(el)
	}
	for _, p := range cols.Puzzles {
		add(p)
	}
	for _, t := range cols.Timeline {
		add(t)
	}
	return nodes
}

// buildNode assembles a single node: label, importance, visual hints, and an
// ErrorState when required fields are missing.
func (r *Resolver) buildNode(e schemas.Entity, connections int) schemas.Node {
	kind := e.Kind()

	importance := r.weights.kindBase(kind) + r.weights.ConnectionPoints*float64(connections)
	if c, ok := e.(schemas.Character); ok {
		importance *= r.weights.tierMultiplier(c.Tier)
	}
	if importance > r.weights.MaxImportance {
		importance = r.weights.MaxImportance
	}

	label := e.DisplayName()
	var errState *schemas.NodeError
	switch {
	case e.EntityID() == "":
		errState = &schemas.NodeError{Code: schemas.CodeMissingID, Message: "entity has no id"}
	case label == "":
		errState = &schemas.NodeError{Code: schemas.CodeMissingName, Message: "entity has no name"}
		label = e.EntityID()
	}

	return schemas.Node{
		ID:     e.EntityID(),
		Type:   nodeTypeFor(kind),
		Entity: e,
		Label:  label,
		Metadata: schemas.NodeMetadata{
			EntityKind:      kind,
			ImportanceScore: importance,
			VisualHints: schemas.VisualHints{
				Size:  sizeBucket(importance, r.weights.MaxImportance),
				Color: kindColors[kind],
				Icon:  kindIcons[kind],
			},
			ErrorState: errState,
		},
	}
}

// sizeBucket maps an importance score to one of four render sizes.
func sizeBucket(importance, max float64) int {
	if max <= 0 {
		return 1
	}
	switch ratio := importance / max; {
	case ratio >= 0.75:
		return 4
	case ratio >= 0.5:
		return 3
	case ratio >= 0.25:
		return 2
	default:
		return 1
	}
}
