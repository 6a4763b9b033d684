// ABOUTME: Directed multigraph over integer lattice states with per-vertex in/out
// ABOUTME: adjacency, permitting self-loops and parallel edges with distinct symbols.
package lattice

import "sort"

// Graph is a directed multigraph whose vertices are lattice state IDs and
// whose arcs are Edges. Self-loops and parallel edges between the same state
// pair are permitted; an edge whose identity (endpoints + output symbol)
// matches an existing edge is not added again.
//
// A Graph is built incrementally by a Parser and is not safe for concurrent
// mutation.
type Graph struct {
	vertices map[int]struct{}
	edges    map[EdgeKey]*Edge
	in       map[int][]*Edge
	out      map[int][]*Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[int]struct{}),
		edges:    make(map[EdgeKey]*Edge),
		in:       make(map[int][]*Edge),
		out:      make(map[int][]*Edge),
	}
}

// AddVertex adds the state if not already present. It reports whether the
// graph changed.
func (g *Graph) AddVertex(state int) bool {
	if _, ok := g.vertices[state]; ok {
		return false
	}
	g.vertices[state] = struct{}{}
	return true
}

// AddEdge adds the edge, creating both endpoint vertices as needed. It
// reports whether the graph changed; an edge with the same identity as an
// existing edge (weight excluded) is a no-op.
func (g *Graph) AddEdge(e Edge) bool {
	key := e.Key()
	if _, ok := g.edges[key]; ok {
		return false
	}
	g.AddVertex(e.Start)
	g.AddVertex(e.End)
	stored := &e
	g.edges[key] = stored
	g.out[e.Start] = append(g.out[e.Start], stored)
	g.in[e.End] = append(g.in[e.End], stored)
	return true
}

// HasVertex reports whether the state exists in the graph.
func (g *Graph) HasVertex(state int) bool {
	_, ok := g.vertices[state]
	return ok
}

// HasEdge reports whether an edge with the given identity exists.
func (g *Graph) HasEdge(key EdgeKey) bool {
	_, ok := g.edges[key]
	return ok
}

// InEdges returns the edges terminating at the state. The returned slice is
// owned by the graph and must not be mutated.
func (g *Graph) InEdges(state int) []*Edge {
	return g.in[state]
}

// OutEdges returns the edges originating from the state. The returned slice
// is owned by the graph and must not be mutated.
func (g *Graph) OutEdges(state int) []*Edge {
	return g.out[state]
}

// Vertices returns all state IDs in ascending order.
func (g *Graph) Vertices() []int {
	ids := make([]int, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Edges returns all edges in deterministic order: by start state, end state,
// then output symbol.
func (g *Graph) Edges() []*Edge {
	all := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.OutputSymbol < b.OutputSymbol
	})
	return all
}

// VertexCount returns the number of states.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// MaxOutDegree returns the largest out-degree of any state, or zero for an
// empty graph. Rendering uses it to scale state sizes.
func (g *Graph) MaxOutDegree() int {
	max := 0
	for id := range g.vertices {
		if n := len(g.out[id]); n > max {
			max = n
		}
	}
	return max
}
