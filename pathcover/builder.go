package pathcover

// EncodedNode packs a (id, orientation) pair the way the external
// path-index format expects: Node::encode(id, is_reverse) = (id<<1)|is_reverse.
type EncodedNode uint64

// EncodeNode packs id and orientation into the external path-index's node
// encoding.
func EncodeNode(id uint64, isReverse bool) EncodedNode {
	e := EncodedNode(id << 1)
	if isReverse {
		e |= 1
	}
	return e
}

// PathMetadata tags a path with the sample/contig/phase/count quadruple the
// external builder records alongside it.
type PathMetadata struct {
	Sample  int
	Contig  int
	Phase   int
	Count   int
}

// Builder is the external path-index collaborator the planner populates.
// An implementation owns storage for paths and their metadata; this package
// only calls it in the sequence documented in spec.md §6/§4.G.
type Builder interface {
	// Insert adds one path (a list of encoded, oriented nodes) tagged with
	// the given metadata. bidirectional reports whether the path's reverse
	// traversal should also be indexed.
	Insert(path []EncodedNode, bidirectional bool, meta PathMetadata)

	AddMetadata(key, value string)
	AddPath(name [4]int) // (sample, contig, haplotype, count) name tuple

	SetSamples(n int)
	SetContigs(n int)
	SetHaplotypes(n int)

	// Finish finalizes construction; no further Insert calls are valid
	// afterward.
	Finish() error
}
