package graph

import (
	"fmt"

	dgraph "github.com/dominikbraun/graph"
)

// DefaultMaxDepth is the bounded traversal depth applied when a caller
// passes a negative depth, matching the "bounded-depth (default <= 3)"
// requirement for inbound/outbound relation queries.
const DefaultMaxDepth = 3

// Direction selects which side of an edge a traversal follows.
type Direction string

const (
	DirectionOutbound Direction = "outbound" // follow edges away from the start node (callees, imports)
	DirectionInbound  Direction = "inbound"  // follow edges into the start node (callers, imported-by)
)

// TraversalResult is one node reached during a bounded traversal, with the
// shallowest depth at which it was reached and the relation that reached it
// there.
type TraversalResult struct {
	Node     Node
	Depth    int
	Relation RelationType
}

// Traverser answers bounded-depth, shortest-path, and stats queries over a
// previously built Data graph. A Traverser is read-only and safe for
// concurrent use once constructed.
type Traverser struct {
	nodes map[string]Node

	outbound map[string][]Edge // source node ID -> outbound edges
	inbound  map[string][]Edge // target node ID -> inbound edges

	g dgraph.Graph[string, string] // used only for ShortestPath
}

// NewTraverser indexes a graph's nodes and edges for traversal queries.
func NewTraverser(data *Data) *Traverser {
	t := &Traverser{
		nodes:    make(map[string]Node, len(data.Nodes)),
		outbound: make(map[string][]Edge),
		inbound:  make(map[string][]Edge),
	}

	t.g = dgraph.New(func(id string) string { return id }, dgraph.Directed())
	for _, n := range data.Nodes {
		t.nodes[n.ID] = n
		_ = t.g.AddVertex(n.ID)
	}
	for _, e := range data.Edges {
		t.outbound[e.SourceNodeID] = append(t.outbound[e.SourceNodeID], e)
		t.inbound[e.TargetNodeID] = append(t.inbound[e.TargetNodeID], e)
		_ = t.g.AddEdge(e.SourceNodeID, e.TargetNodeID) // ignore dangling/duplicate edge errors
	}

	return t
}

// Traverse walks from nodeID up to depth hops, following relation edges in
// direction dir, never revisiting a node at an equal or greater depth than
// it was first reached at - this keeps cycles from causing unbounded work
// or duplicate results. relations filters which RelationType values are
// followed; a nil/empty slice follows all relation types. depth == 0 is a
// valid bound that yields only the start node; a negative depth is treated
// as unset and uses DefaultMaxDepth.
func (t *Traverser) Traverse(nodeID string, dir Direction, relations []RelationType, depth int) []TraversalResult {
	if depth < 0 {
		depth = DefaultMaxDepth
	}
	if depth == 0 {
		if node, ok := t.nodes[nodeID]; ok {
			return []TraversalResult{{Node: node, Depth: 0}}
		}
		return nil
	}
	wanted := relationSet(relations)

	var results []TraversalResult
	resultIdx := map[string]int{} // node ID -> index in results
	visited := map[string]int{nodeID: 0}

	var walk func(id string, currentDepth int)
	walk = func(id string, currentDepth int) {
		if currentDepth >= depth {
			return
		}
		edges := t.edgesFor(id, dir)
		for _, e := range edges {
			if len(wanted) > 0 && !wanted[e.RelationType] {
				continue
			}
			next := e.TargetNodeID
			if dir == DirectionInbound {
				next = e.SourceNodeID
			}
			nextDepth := currentDepth + 1
			if prev, seen := visited[next]; seen && prev <= nextDepth {
				continue
			}
			visited[next] = nextDepth
			node, ok := t.nodes[next]
			if !ok {
				continue
			}
			if i, dup := resultIdx[next]; dup {
				// Re-reached at a shallower depth: update in place, no second entry.
				results[i].Depth = nextDepth
				results[i].Relation = e.RelationType
			} else {
				resultIdx[next] = len(results)
				results = append(results, TraversalResult{Node: node, Depth: nextDepth, Relation: e.RelationType})
			}
			walk(next, nextDepth)
		}
	}

	walk(nodeID, 0)
	return results
}

func (t *Traverser) edgesFor(id string, dir Direction) []Edge {
	if dir == DirectionInbound {
		return t.inbound[id]
	}
	return t.outbound[id]
}

func relationSet(relations []RelationType) map[RelationType]bool {
	if len(relations) == 0 {
		return nil
	}
	s := make(map[RelationType]bool, len(relations))
	for _, r := range relations {
		s[r] = true
	}
	return s
}

// ShortestPath returns the node IDs on the shortest outbound path from
// fromID to toID, inclusive of both endpoints, or an error if no path
// exists.
func (t *Traverser) ShortestPath(fromID, toID string) ([]string, error) {
	path, err := dgraph.ShortestPath(t.g, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("no path from %s to %s: %w", fromID, toID, err)
	}
	return path, nil
}

// Stats summarizes the graph's node and edge counts, including a per-relation
// breakdown.
func (t *Traverser) Stats() Stats {
	s := Stats{
		NodeCount:       len(t.nodes),
		EdgesByRelation: make(map[RelationType]int),
	}
	for _, edges := range t.outbound {
		for _, e := range edges {
			s.EdgeCount++
			s.EdgesByRelation[e.RelationType]++
		}
	}
	return s
}
