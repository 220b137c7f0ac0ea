// Package minimizer streams canonical window-minimum kmers ("minimizers")
// out of a DNA sequence, using a monotone deque to track the minimum over a
// sliding window of w consecutive kmers.
package minimizer

import "github.com/grailbio/gbwtindex/kmer"

// Record is one emitted minimizer: its canonical packed key, the hash used
// to order it, the zero-based offset of its first base in the source
// sequence, and whether the canonical form is the reverse complement.
type Record struct {
	Key       kmer.Key
	Hash      uint64
	Offset    int
	IsReverse bool
}

func (r Record) sameIdentity(o Record) bool {
	return r.Key == o.Key && r.Offset == o.Offset && r.IsReverse == o.IsReverse
}

// less reports whether a has strictly smaller minimizer priority than b:
// ascending by hash, tie-broken by key.
func less(a, b Record) bool {
	if a.Hash != b.Hash {
		return a.Hash < b.Hash
	}
	return a.Key < b.Key
}

// Enumerator streams minimizer Records out of a sequence one at a time, in
// the style of the teacher's kmerizer: Reset a sequence, then repeatedly
// call Scan/Get.
type Enumerator struct {
	k, w int
	enc  *kmer.Encoder

	seq string
	pos int // next base index to feed into enc

	windowStart  int // offset of the first ready kmer since the last reset, or -1
	deque        []Record
	haveEmitted  bool
	lastEmitted  Record
	cur          Record
}

// NewEnumerator creates an Enumerator for kmer length k and window length w
// (number of consecutive kmers compared together).
func NewEnumerator(k, w int) *Enumerator {
	if w < 1 {
		panic("minimizer.NewEnumerator: w must be >= 1")
	}
	return &Enumerator{
		k:           k,
		w:           w,
		enc:         kmer.NewEncoder(k),
		windowStart: -1,
	}
}

// Reset begins enumeration over a new sequence.
func (e *Enumerator) Reset(seq string) {
	e.seq = seq
	e.pos = 0
	e.enc.Reset()
	e.windowStart = -1
	e.deque = e.deque[:0]
	e.haveEmitted = false
}

// Scan advances to the next emitted minimizer. It returns false once the
// sequence is exhausted.
func (e *Enumerator) Scan() bool {
	for e.pos < len(e.seq) {
		ch := e.seq[e.pos]
		offset := e.pos - e.k + 1 // offset of the kmer that Add will complete, if ready
		e.pos++
		if !e.enc.Add(ch) {
			// Either not yet full, or just reset by an invalid base: in both
			// cases the window breaks.
			e.deque = e.deque[:0]
			e.windowStart = -1
			continue
		}
		key, isRev := kmer.Canonical(e.enc.Forward(), e.enc.ReverseComplement())
		cand := Record{Key: key, Hash: kmer.Hash64(key), Offset: offset, IsReverse: isRev}

		if e.windowStart < 0 {
			e.windowStart = offset
		}
		// Pop only strictly worse candidates: an equal one stays ahead of
		// cand, so ties resolve to the leftmost occurrence in the window.
		for len(e.deque) > 0 && less(cand, e.deque[len(e.deque)-1]) {
			e.deque = e.deque[:len(e.deque)-1]
		}
		e.deque = append(e.deque, cand)
		for len(e.deque) > 0 && e.deque[0].Offset < offset-e.w+1 {
			e.deque = e.deque[1:]
		}

		if offset-e.windowStart+1 < e.w {
			continue // window not yet full
		}
		front := e.deque[0]
		if e.haveEmitted && e.lastEmitted.sameIdentity(front) {
			continue // same minimum as the previous window: already emitted
		}
		e.cur = front
		e.haveEmitted = true
		e.lastEmitted = front
		return true
	}
	return false
}

// Get returns the minimizer found by the most recent successful Scan.
func (e *Enumerator) Get() Record { return e.cur }

// Enumerate collects every minimizer in seq into a slice, for callers that
// do not need the streaming interface.
func Enumerate(seq string, k, w int) []Record {
	e := NewEnumerator(k, w)
	e.Reset(seq)
	var out []Record
	for e.Scan() {
		out = append(out, e.Get())
	}
	return out
}
