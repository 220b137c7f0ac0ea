package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/grailbio/gbwtindex/graph"
	"github.com/grailbio/gbwtindex/internal/graphtest"
)

func TestCanonicalWindowPicksSmaller(t *testing.T) {
	g := graphtest.New()
	g.AddNode(1, "")
	g.AddNode(2, "")

	forward := []graph.Handle{g.Handle(1, false), g.Handle(2, false)}
	got := graph.CanonicalWindow(g, forward)

	rc := []graph.Handle{g.Flip(forward[1]), g.Flip(forward[0])}
	if lessSeq(rc, forward) {
		require.Equal(t, rc, got)
	} else {
		require.Equal(t, forward, got)
	}
}

func TestCanonicalWindowIsSymmetric(t *testing.T) {
	g := graphtest.New()
	g.AddNode(1, "")
	g.AddNode(2, "")
	g.AddNode(3, "")

	window := []graph.Handle{g.Handle(1, false), g.Handle(2, true), g.Handle(3, false)}
	rc := make([]graph.Handle, len(window))
	for i, h := range window {
		rc[len(window)-1-i] = g.Flip(h)
	}

	require.Equal(t, graph.CanonicalWindow(g, window), graph.CanonicalWindow(g, rc))
}

func lessSeq(a, b []graph.Handle) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
