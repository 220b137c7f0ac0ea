// Package graphtest provides a small in-memory graph.Graph implementation
// used only by this module's own tests.
package graphtest

import "github.com/grailbio/gbwtindex/graph"

type node struct {
	id  uint64
	seq string
}

type edge struct {
	from, to graph.Handle
}

// Graph is a hand-built bidirected sequence graph: nodes are added with
// AddNode and directed handle-to-handle edges with AddEdge, and the result
// satisfies graph.Graph. Every edge implicitly carries its reverse-complement
// counterpart (Flip(to) -> Flip(from)), per bidirected-graph convention;
// callers only add one direction.
type Graph struct {
	nodes map[uint64]*node
	edges []edge
	order []uint64 // insertion order, for ForEachHandle
	minID uint64
	maxID uint64
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[uint64]*node)}
}

// AddNode registers a node with the given id and sequence (sequence is
// carried for caller convenience; this package's graph algorithms never
// look at it).
func (g *Graph) AddNode(id uint64, seq string) {
	if _, ok := g.nodes[id]; ok {
		panic("graphtest: duplicate node id")
	}
	g.nodes[id] = &node{id: id, seq: seq}
	g.order = append(g.order, id)
	if len(g.order) == 1 {
		g.minID, g.maxID = id, id
	} else {
		if id < g.minID {
			g.minID = id
		}
		if id > g.maxID {
			g.maxID = id
		}
	}
}

// AddEdge records a directed edge from handle `from` to handle `to`.
func (g *Graph) AddEdge(from, to graph.Handle) {
	g.edges = append(g.edges, edge{from: from, to: to})
}

func (g *Graph) MinNodeID() uint64 { return g.minID }
func (g *Graph) MaxNodeID() uint64 { return g.maxID }
func (g *Graph) NodeCount() int    { return len(g.nodes) }

func (g *Graph) ForEachHandle(fn func(graph.Handle) bool) {
	for _, id := range g.order {
		if !fn(g.Handle(id, false)) {
			return
		}
	}
}

func (g *Graph) Handle(id uint64, isReverse bool) graph.Handle {
	h := id << 1
	if isReverse {
		h |= 1
	}
	return graph.Handle(h)
}

func (g *Graph) ID(h graph.Handle) uint64      { return uint64(h) >> 1 }
func (g *Graph) IsReverse(h graph.Handle) bool { return uint64(h)&1 == 1 }
func (g *Graph) Flip(h graph.Handle) graph.Handle {
	return graph.Handle(uint64(h) ^ 1)
}

// FollowEdges reports neighbors reachable from h: successors (edges stored
// as from==h, or their implicit reverse-complement Flip(to)->Flip(from)
// matching h) when goLeft is false; predecessors when goLeft is true,
// implemented as the successors of Flip(h) flipped back.
func (g *Graph) FollowEdges(h graph.Handle, goLeft bool, fn func(graph.Handle) bool) {
	if goLeft {
		g.FollowEdges(g.Flip(h), false, func(nbr graph.Handle) bool {
			return fn(g.Flip(nbr))
		})
		return
	}
	for _, e := range g.edges {
		if e.from == h {
			if !fn(e.to) {
				return
			}
			continue
		}
		if g.Flip(e.to) == h {
			if !fn(g.Flip(e.from)) {
				return
			}
		}
	}
}
