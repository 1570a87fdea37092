// Package traversal provides connectivity and filtering over an
// already-resolved graph: degree counts, breadth-first depth expansion,
// reachability, and the attribute filters the board UI composes.
package traversal

import "github.com/caseboard/caseboard/api/schemas"

// Connectivity returns the number of edges touching the node, counting both
// directions.
func Connectivity(nodeID string, edges []schemas.Edge) int {
	n := 0
	for _, e := range edges {
		if e.Source == nodeID || e.Target == nodeID {
			n++
		}
	}
	return n
}

// ConnectedEdges partitions the edges touching a node into incoming and
// outgoing, preserving the input iteration order within each partition.
func ConnectedEdges(nodeID string, edges []schemas.Edge) (incoming, outgoing []schemas.Edge) {
	for _, e := range edges {
		switch nodeID {
		case e.Target:
			incoming = append(incoming, e)
		case e.Source:
			outgoing = append(outgoing, e)
		}
	}
	return incoming, outgoing
}

// adjacency builds an undirected neighbor index from the edge list.
func adjacency(edges []schemas.Edge) map[string][]string {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	return adj
}

// ExpandDepth returns the set of node IDs within depth hops of focus over the
// undirected adjacency implied by edges. depth 0 yields only the focus node.
// A visited set guarantees termination on cyclic graphs; each node is
// returned at most once (O(V+E)).
func ExpandDepth(focus string, edges []schemas.Edge, depth int) map[string]struct{} {
	visited := map[string]struct{}{focus: {}}
	if depth <= 0 {
		return visited
	}

	adj := adjacency(edges)
	frontier := []string{focus}
	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []string
		for _, id := range frontier {
			for _, neighbor := range adj[id] {
				if _, seen := visited[neighbor]; seen {
					continue
				}
				visited[neighbor] = struct{}{}
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
	return visited
}

// Reachable returns every node reachable from start, following edges in both
// directions with no depth bound. Used for single-puzzle isolation.
func Reachable(start string, edges []schemas.Edge) map[string]struct{} {
	visited := map[string]struct{}{start: {}}
	adj := adjacency(edges)

	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, neighbor := range adj[id] {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, neighbor)
		}
	}
	return visited
}

// PruneDanglingEdges keeps only edges whose both endpoints are in the visible
// set. Edges never dangle after node filtering.
func PruneDanglingEdges(edges []schemas.Edge, visible map[string]struct{}) []schemas.Edge {
	kept := make([]schemas.Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := visible[e.Source]; !ok {
			continue
		}
		if _, ok := visible[e.Target]; !ok {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
