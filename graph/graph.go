// Package graph defines the bidirected sequence-graph interface consumed
// by the minimizer index builder and the path-cover planner, plus a few
// generic algorithms (weakly-connected components, canonical windows) that
// operate on any implementation of it.
package graph

// Handle is an oriented reference to a node: which node, and which strand
// it is being traversed on.
type Handle uint64

// Graph is the bidirected sequence graph consumed by this package. An
// implementation owns node identity and sequence; this package only walks
// topology.
type Graph interface {
	MinNodeID() uint64
	MaxNodeID() uint64
	NodeCount() int

	// ForEachHandle calls fn once for the forward handle of every node in
	// the graph, in the graph's own iteration order, stopping early if fn
	// returns false.
	ForEachHandle(fn func(Handle) bool)

	// Handle returns the handle for node id on the given strand.
	Handle(id uint64, isReverse bool) Handle
	ID(h Handle) uint64
	IsReverse(h Handle) bool
	Flip(h Handle) Handle

	// FollowEdges calls fn once per neighbor reachable from h: successors
	// if goLeft is false, predecessors (i.e. the successors of Flip(h),
	// each flipped back) if goLeft is true. Stops early if fn returns false.
	FollowEdges(h Handle, goLeft bool, fn func(Handle) bool)
}
