// Package layouts ships two deterministic positioners (grid and circle) so
// the CLI renders end-to-end without an external layout engine. The real
// force-directed algorithm remains an external collaborator behind
// schemas.LayoutEngine.
package layouts

import (
	"context"
	"fmt"
	"math"

	"github.com/caseboard/caseboard/api/schemas"
)

const defaultSpacing = 120.0

// Grid lays nodes out row-major on a square-ish grid.
type Grid struct{}

var _ schemas.LayoutEngine = Grid{}

// Compute positions a copy of the graph. The input is never mutated.
func (Grid) Compute(ctx context.Context, g *schemas.ResolvedGraph, cfg schemas.LayoutConfig) (*schemas.GraphData, error) {
	spacing := cfg.Spacing
	if spacing <= 0 {
		spacing = defaultSpacing
	}
	cols := int(math.Ceil(math.Sqrt(float64(len(g.Nodes)))))
	if cols == 0 {
		cols = 1
	}

	out := &schemas.GraphData{
		Nodes: make([]schemas.PositionedNode, 0, len(g.Nodes)),
		Edges: append([]schemas.Edge(nil), g.Edges...),
	}
	for i, n := range g.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out.Nodes = append(out.Nodes, schemas.PositionedNode{
			Node: n,
			Position: schemas.Position{
				X: float64(i%cols) * spacing,
				Y: float64(i/cols) * spacing,
			},
		})
	}
	return out, nil
}

// Circle lays nodes out evenly on a ring.
type Circle struct{}

var _ schemas.LayoutEngine = Circle{}

func (Circle) Compute(ctx context.Context, g *schemas.ResolvedGraph, cfg schemas.LayoutConfig) (*schemas.GraphData, error) {
	spacing := cfg.Spacing
	if spacing <= 0 {
		spacing = defaultSpacing
	}
	n := len(g.Nodes)
	// Radius grows with node count so spacing holds roughly constant along
	// the circumference.
	radius := spacing * float64(n) / (2 * math.Pi)

	out := &schemas.GraphData{
		Nodes: make([]schemas.PositionedNode, 0, n),
		Edges: append([]schemas.Edge(nil), g.Edges...),
	}
	for i, node := range g.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		angle := 2 * math.Pi * float64(i) / math.Max(float64(n), 1)
		out.Nodes = append(out.Nodes, schemas.PositionedNode{
			Node: node,
			Position: schemas.Position{
				X: radius * math.Cos(angle),
				Y: radius * math.Sin(angle),
			},
		})
	}
	return out, nil
}

// ForAlgorithm returns the built-in engine for a layout algorithm name.
func ForAlgorithm(name string) (schemas.LayoutEngine, error) {
	switch name {
	case "grid", "":
		return Grid{}, nil
	case "circle":
		return Circle{}, nil
	default:
		return nil, fmt.Errorf("unknown built-in layout algorithm %q", name)
	}
}
