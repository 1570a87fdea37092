// Package graphhash fingerprints resolved graphs for cache keying. The hash
// depends only on graph content: node IDs, types and entity data, and edge
// identity triples. Layout positions and rendering metadata are excluded, so
// two graphs that differ only in where the UI drew them hash identically.
package graphhash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/caseboard/caseboard/api/schemas"
	jsoniter "github.com/json-iterator/go"
)

// ErrUnserializable reports an entity payload the canonical encoder could not
// handle. Callers treat it as a cache bypass, never a fatal error.
var ErrUnserializable = errors.New("graphhash: graph not serializable")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// canonicalNode is the hashed projection of a node. Metadata (importance,
// visual hints, error state) is rendering concern and deliberately absent.
type canonicalNode struct {
	ID     string             `json:"id"`
	Type   schemas.NodeType   `json:"type"`
	Kind   schemas.EntityKind `json:"kind"`
	Entity schemas.Entity     `json:"entity"`
}

// canonicalEdge is the hashed projection of an edge.
type canonicalEdge struct {
	ID     string                   `json:"id"`
	Source string                   `json:"source"`
	Target string                   `json:"target"`
	Type   schemas.RelationshipType `json:"type"`
}

type canonicalGraph struct {
	Nodes []canonicalNode `json:"nodes"`
	Edges []canonicalEdge `json:"edges"`
}

// canonicalize produces the sorted, position-free projection of a graph.
func canonicalize(g *schemas.ResolvedGraph) canonicalGraph {
	cg := canonicalGraph{
		Nodes: make([]canonicalNode, 0, len(g.Nodes)),
		Edges: make([]canonicalEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		cg.Nodes = append(cg.Nodes, canonicalNode{
			ID:     n.ID,
			Type:   n.Type,
			Kind:   n.Metadata.EntityKind,
			Entity: n.Entity,
		})
	}
	for _, e := range g.Edges {
		cg.Edges = append(cg.Edges, canonicalEdge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Type:   e.Type,
		})
	}
	sort.Slice(cg.Nodes, func(i, j int) bool { return cg.Nodes[i].ID < cg.Nodes[j].ID })
	sort.Slice(cg.Edges, func(i, j int) bool { return cg.Edges[i].ID < cg.Edges[j].ID })
	return cg
}

// canonicalBytes serializes the projection with the canonical encoder.
func canonicalBytes(g *schemas.ResolvedGraph) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrUnserializable)
	}
	data, err := json.Marshal(canonicalize(g))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnserializable, err)
	}
	return data, nil
}

// Hash returns the SHA-256 fingerprint of the graph's canonical form, hex
// encoded. Identical structure yields identical hashes regardless of node or
// edge slice order.
func Hash(g *schemas.ResolvedGraph) (string, error) {
	data, err := canonicalBytes(g)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// HashFast returns an FNV-1a 64 fingerprint over the same canonical form.
// Collision probability is higher than SHA-256 but still negligible for
// cache-keying; use it when hashing large graphs on every interaction.
func HashFast(g *schemas.ResolvedGraph) (string, error) {
	data, err := canonicalBytes(g)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
