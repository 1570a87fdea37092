// Package resolver derives the typed node-link graph from the raw entity
// collections. Resolution is defensive by contract: dangling references are
// reported as diagnostics and never abort a run, because case data is edited
// live and transiently inconsistent.
package resolver

import (
	"fmt"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/caseboard/caseboard/internal/lookup"
	"go.uber.org/zap"
)

// Result bundles the resolved graph with everything the resolver had to
// complain about while building it.
type Result struct {
	Graph       *schemas.ResolvedGraph
	Diagnostics []schemas.Diagnostic
}

// Resolver turns entity collections into a ResolvedGraph. Construct with New;
// the zero value is not usable.
type Resolver struct {
	weights Weights
	log     *zap.Logger
}

// New creates a Resolver. A nil logger falls back to a no-op logger.
func New(weights Weights, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		weights: weights,
		log:     logger.Named("resolver"),
	}
}

// Resolve cross-references the collections and returns the deduplicated,
// typed edge set plus one node per entity. Deterministic for identical
// inputs; never returns an error.
func (r *Resolver) Resolve(cols schemas.EntityCollections) *Result {
	maps := lookup.Build(cols)

	run := &resolveRun{
		Resolver: r,
		maps:     maps,
		seen:     make(map[string]struct{}),
	}
	run.diags = append(run.diags, maps.Duplicates...)

	run.createOwnershipEdges(cols.Elements)
	run.createRequirementEdges(cols.Puzzles)
	run.createRewardEdges(cols.Puzzles)
	run.createTimelineEdges(cols.Elements)
	run.createContainerEdges(cols.Elements)
	run.createChainEdges(cols.Puzzles)

	nodes := r.transformNodes(cols, run.edges)

	r.log.Debug("resolution complete",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(run.edges)),
		zap.Int("diagnostics", len(run.diags)))

	return &Result{
		Graph: &schemas.ResolvedGraph{
			Nodes: nodes,
			Edges: run.edges,
		},
		Diagnostics: run.diags,
	}
}

// resolveRun carries the mutable state of a single Resolve call so the
// Resolver itself stays reusable and stateless.
type resolveRun struct {
	*Resolver
	maps  *lookup.Maps
	edges []schemas.Edge
	seen  map[string]struct{} // dedup by derived edge ID
	diags []schemas.Diagnostic
}

// addEdge appends an edge unless it is self-referential or a duplicate of an
// already-emitted (source, target, type) triple. First emission wins.
func (run *resolveRun) addEdge(e schemas.Edge) {
	if e.Source == e.Target {
		return
	}
	id := schemas.EdgeID(e.Source, e.Target, e.Type)
	if _, dup := run.seen[id]; dup {
		return
	}
	run.seen[id] = struct{}{}
	e.ID = id
	run.edges = append(run.edges, e)
}

// warn records a diagnostic and mirrors it to the operator log.
func (run *resolveRun) warn(code schemas.DiagnosticCode, msg string, ctx map[string]string) {
	run.diags = append(run.diags, schemas.Diagnostic{
		Severity: schemas.SeverityWarning,
		Code:     code,
		Message:  msg,
		Context:  ctx,
	})
	run.log.Warn(msg, zap.String("code", string(code)))
}

// createOwnershipEdges emits Character -> Element edges for every element
// whose owner resolves. Strength scales with the owner's tier.
func (run *resolveRun) createOwnershipEdges(elements []schemas.Element) {
	for _, el := range elements {
		if el.OwnerID == "" {
			continue
		}
		owner, ok := run.maps.Characters[el.OwnerID]
		if !ok {
			run.warn(schemas.CodeUnknownOwner,
				fmt.Sprintf("element '%s' names unknown owner '%s'", el.ID, el.OwnerID),
				map[string]string{"element": el.ID, "owner": el.OwnerID})
			continue
		}
		run.addEdge(schemas.Edge{
			Source: owner.ID,
			Target: el.ID,
			Type:   schemas.RelOwnership,
			Weight: run.weights.OwnershipStrength * run.weights.tierMultiplier(owner.Tier),
			Label:  "owns",
		})
	}
}

// createRequirementEdges emits Element -> Puzzle edges: the element flows
// into the puzzle that requires it.
func (run *resolveRun) createRequirementEdges(puzzles []schemas.Puzzle) {
	for _, p := range puzzles {
		for _, elID := range p.PuzzleElementIDs {
			if _, ok := run.maps.Elements[elID]; !ok {
				run.warn(schemas.CodeUnknownRequirement,
					fmt.Sprintf("puzzle '%s' requires unknown element '%s'", p.ID, elID),
					map[string]string{"puzzle": p.ID, "element": elID})
				continue
			}
			run.addEdge(schemas.Edge{
				Source: elID,
				Target: p.ID,
				Type:   schemas.RelRequirement,
				Weight: run.weights.RequirementStrength,
				Label:  "required by",
			})
		}
	}
}

// createRewardEdges emits Puzzle -> Element edges for puzzle rewards. Reward
// edges animate in the UI to show the flow of newly unlocked items.
func (run *resolveRun) createRewardEdges(puzzles []schemas.Puzzle) {
	for _, p := range puzzles {
		for _, elID := range p.RewardIDs {
			if _, ok := run.maps.Elements[elID]; !ok {
				run.warn(schemas.CodeUnknownReward,
					fmt.Sprintf("puzzle '%s' rewards unknown element '%s'", p.ID, elID),
					map[string]string{"puzzle": p.ID, "element": elID})
				continue
			}
			run.addEdge(schemas.Edge{
				Source:   p.ID,
				Target:   elID,
				Type:     schemas.RelReward,
				Weight:   run.weights.RewardStrength,
				Label:    "rewards",
				Animated: true,
			})
		}
	}
}

// createTimelineEdges emits Element -> TimelineEvent edges.
func (run *resolveRun) createTimelineEdges(elements []schemas.Element) {
	for _, el := range elements {
		if el.TimelineEventID == "" {
			continue
		}
		if _, ok := run.maps.Timeline[el.TimelineEventID]; !ok {
			run.warn(schemas.CodeUnknownTimeline,
				fmt.Sprintf("element '%s' references unknown timeline event '%s'", el.ID, el.TimelineEventID),
				map[string]string{"element": el.ID, "event": el.TimelineEventID})
			continue
		}
		run.addEdge(schemas.Edge{
			Source: el.ID,
			Target: el.TimelineEventID,
			Type:   schemas.RelTimeline,
			Weight: run.weights.TimelineStrength,
			Label:  "evidences",
		})
	}
}

// createContainerEdges emits Element -> Element edges for physical
// containment. Self-containment is invalid data and is reported, never
// silently included.
func (run *resolveRun) createContainerEdges(elements []schemas.Element) {
	for _, el := range elements {
		for _, contentID := range el.ContentIDs {
			if contentID == el.ID {
				run.warn(schemas.CodeSelfContainer,
					fmt.Sprintf("element '%s' lists itself in content_ids", el.ID),
					map[string]string{"element": el.ID})
				continue
			}
			if _, ok := run.maps.Elements[contentID]; !ok {
				run.warn(schemas.CodeUnknownContent,
					fmt.Sprintf("element '%s' contains unknown element '%s'", el.ID, contentID),
					map[string]string{"element": el.ID, "content": contentID})
				continue
			}
			run.addEdge(schemas.Edge{
				Source: el.ID,
				Target: contentID,
				Type:   schemas.RelContainer,
				Weight: run.weights.ContainerStrength,
				Label:  "contains",
			})
		}
	}
}

// createChainEdges emits Puzzle -> Puzzle edges from a puzzle to its
// sub-puzzles.
func (run *resolveRun) createChainEdges(puzzles []schemas.Puzzle) {
	for _, p := range puzzles {
		for _, subID := range p.SubPuzzleIDs {
			if _, ok := run.maps.Puzzles[subID]; !ok {
				run.warn(schemas.CodeUnknownSubPuzzle,
					fmt.Sprintf("puzzle '%s' chains to unknown puzzle '%s'", p.ID, subID),
					map[string]string{"puzzle": p.ID, "sub_puzzle": subID})
				continue
			}
			run.addEdge(schemas.Edge{
				Source: p.ID,
				Target: subID,
				Type:   schemas.RelChain,
				Weight: run.weights.ChainStrength,
				Label:  "unlocks",
			})
		}
	}
}
