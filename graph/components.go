package graph

import "github.com/grailbio/base/bitset"

// WeaklyConnectedComponents groups every node of g into the weakly
// connected component it belongs to (edges followed in both directions),
// emitted in g's ForEachHandle iteration order: each component is the
// insertion-ordered list of node ids discovered while walking it.
//
// The visited set is a flat bit-vector indexed by id-minID, in the style of
// circular/bitmap.go's raw []uintptr word storage, sized once up front
// rather than as a circular/2-D structure since component discovery makes
// one linear pass.
func WeaklyConnectedComponents(g Graph) [][]uint64 {
	minID := g.MinNodeID()
	maxID := g.MaxNodeID()
	if g.NodeCount() == 0 {
		return nil
	}
	span := int(maxID-minID) + 1
	words := make([]uintptr, (span+bitset.BitsPerWord-1)/bitset.BitsPerWord)

	visit := func(id uint64) {
		idx := int(id - minID)
		words[idx/bitset.BitsPerWord] |= 1 << uint(idx%bitset.BitsPerWord)
	}
	visited := func(id uint64) bool {
		return bitset.Test(words, int(id-minID))
	}

	var components [][]uint64
	g.ForEachHandle(func(start Handle) bool {
		startID := g.ID(start)
		if visited(startID) {
			return true
		}
		var component []uint64
		stack := []uint64{startID}
		visit(startID)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, id)

			for _, strand := range [2]bool{false, true} {
				h := g.Handle(id, strand)
				for _, goLeft := range [2]bool{false, true} {
					g.FollowEdges(h, goLeft, func(nbr Handle) bool {
						nbrID := g.ID(nbr)
						if !visited(nbrID) {
							visit(nbrID)
							stack = append(stack, nbrID)
						}
						return true
					})
				}
			}
		}
		components = append(components, component)
		return true
	})
	return components
}
