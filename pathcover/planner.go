// Package pathcover greedily generates n paths per weakly-connected
// component of a graph, each path threading through under-covered nodes and
// windows so that, across all n paths, coverage spreads roughly evenly.
package pathcover

import (
	"encoding/binary"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/gbwtindex/graph"
)

// MinK is the smallest window length the planner accepts.
const MinK = 2

// Plan runs the per-component path-cover procedure over every weakly
// connected component of g, generating n paths per component, and feeds the
// result into b in the sequence b expects: one Insert per path, then a
// single metadata-setting/Finish pass.
//
// k is the window length used once a path has grown to at least k-1 nodes.
// k < MinK and g.MinNodeID() < 1 are both InvalidParameter: reported to
// standard error, with b left holding an empty path-index rather than a
// crash (node id 0 is index.NoValue's sentinel, so an unvalidated id-0
// node would otherwise corrupt position encoding downstream).
func Plan(g graph.Graph, n, k int, b Builder) error {
	if k < MinK {
		log.Error.Printf("pathcover: k=%d below minimum %d", k, MinK)
		return emptyPathIndex(b)
	}
	if g.MinNodeID() < 1 {
		log.Error.Printf("pathcover: min_node_id=%d must be >= 1", g.MinNodeID())
		return emptyPathIndex(b)
	}
	components := graph.WeaklyConnectedComponents(g)
	for componentIdx, component := range components {
		cov := NewSimpleCoverage()
		for i := 0; i < n; i++ {
			path := buildOnePath(g, component, k, cov)
			encoded := make([]EncodedNode, len(path))
			for j, h := range path {
				encoded[j] = EncodeNode(g.ID(h), g.IsReverse(h))
			}
			b.Insert(encoded, true, PathMetadata{Sample: i, Contig: componentIdx, Phase: 0, Count: 0})
		}
	}
	b.SetSamples(n)
	b.SetHaplotypes(n)
	b.SetContigs(len(components))
	return b.Finish()
}

// emptyPathIndex finalizes b with no paths and zeroed metadata, the
// defined result of an InvalidParameter failure.
func emptyPathIndex(b Builder) error {
	b.SetSamples(0)
	b.SetHaplotypes(0)
	b.SetContigs(0)
	return b.Finish()
}

func buildOnePath(g graph.Graph, component []uint64, k int, cov Coverage) []graph.Handle {
	seed := pickSeed(component, cov)
	path := []graph.Handle{g.Handle(seed, false)}
	cov.IncrementNode(seed)

	visited := map[uint64]bool{seed: true}
	componentSize := len(component)

	tryForward := true
	for len(path) < componentSize {
		var h graph.Handle
		var ok bool
		extendedForward := tryForward
		h, ok = extend(g, path, k, cov, !tryForward)
		if !ok {
			extendedForward = !tryForward
			h, ok = extend(g, path, k, cov, tryForward)
			if !ok {
				break
			}
		}
		if extendedForward {
			path = append(path, h)
		} else {
			path = append([]graph.Handle{h}, path...)
		}
		visited[g.ID(h)] = true
		tryForward = !tryForward

		if len(visited) == componentSize {
			break
		}
	}
	return path
}

// pickSeed returns the node with minimum coverage, ties broken by lower id.
// It finds that node with one linear scan over component; no sorted copy of
// the coverage counters is made, and the caller's coverage is not reordered.
func pickSeed(component []uint64, cov Coverage) uint64 {
	best := component[0]
	bestCov := cov.NodeCoverage(best)
	for _, id := range component[1:] {
		c := cov.NodeCoverage(id)
		if c < bestCov || (c == bestCov && id < best) {
			best, bestCov = id, c
		}
	}
	return best
}

// extend scores every candidate reachable from the path's current end (last
// handle for forward, first handle for backward) and returns the
// minimum-score one, appending/prepending being the caller's job. It
// returns ok=false if there is no candidate.
func extend(g graph.Graph, path []graph.Handle, k int, cov Coverage, goLeft bool) (graph.Handle, bool) {
	var end graph.Handle
	if goLeft {
		end = path[0]
	} else {
		end = path[len(path)-1]
	}

	var candidates []graph.Handle
	g.FollowEdges(end, goLeft, func(h graph.Handle) bool {
		candidates = append(candidates, h)
		return true
	})
	if len(candidates) == 0 {
		return graph.Handle(0), false
	}
	sort.Slice(candidates, func(i, j int) bool { return g.ID(candidates[i]) < g.ID(candidates[j]) })

	useWindow := len(path) >= k-1
	var windowPrefix []graph.Handle
	if useWindow {
		windowPrefix = windowContext(path, k, goLeft)
	}

	best := candidates[0]
	bestScore := scoreCandidate(g, cov, best, useWindow, windowPrefix, goLeft)
	for _, c := range candidates[1:] {
		s := scoreCandidate(g, cov, c, useWindow, windowPrefix, goLeft)
		if s < bestScore {
			best, bestScore = c, s
		}
	}

	if useWindow {
		key := windowKeyWith(g, windowPrefix, best, goLeft)
		cov.IncrementWindow(key)
	}
	cov.IncrementNode(g.ID(best))
	return best, true
}

func scoreCandidate(g graph.Graph, cov Coverage, candidate graph.Handle, useWindow bool, windowPrefix []graph.Handle, goLeft bool) int {
	if !useWindow {
		return cov.NodeCoverage(g.ID(candidate))
	}
	key := windowKeyWith(g, windowPrefix, candidate, goLeft)
	return cov.WindowCoverage(key)
}

// windowContext returns the last (or, for backward extension, first) k-1
// handles of path, in path order.
func windowContext(path []graph.Handle, k int, goLeft bool) []graph.Handle {
	if goLeft {
		return append([]graph.Handle(nil), path[:k-1]...)
	}
	return append([]graph.Handle(nil), path[len(path)-(k-1):]...)
}

// windowKeyWith forms the k-length window (prefix plus candidate, in
// traversal order) and returns a stable string key for its canonical form.
func windowKeyWith(g graph.Graph, prefix []graph.Handle, candidate graph.Handle, goLeft bool) string {
	var window []graph.Handle
	if goLeft {
		window = append([]graph.Handle{candidate}, prefix...)
	} else {
		window = append(append([]graph.Handle(nil), prefix...), candidate)
	}
	canon := graph.CanonicalWindow(g, window)
	buf := make([]byte, 8*len(canon))
	for i, h := range canon {
		binary.LittleEndian.PutUint64(buf[i*8:(i+1)*8], uint64(h))
	}
	return string(buf)
}
