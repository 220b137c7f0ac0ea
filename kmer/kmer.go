// Package kmer implements the bit-packed DNA kmer encoding and the
// canonical-form hashing used to fingerprint short windows of a sequence.
package kmer

import "github.com/grailbio/base/log"

// Key is a 2-bits-per-base packed encoding of a DNA sequence of at most
// KMax bases. The earliest base occupies the most significant bits.
type Key uint64

// KMax is the largest kmer length a Key can hold (32 bases * 2 bits == 64
// bits).
const KMax = 32

// NoKey is the sentinel for "absent/invalid" key, matching invalidKmer in
// the teacher's fusion package.
const NoKey Key = ^Key(0)

var baseCode [256]int8

func init() {
	for i := range baseCode {
		baseCode[i] = -1
	}
	baseCode['A'], baseCode['a'] = 0, 0
	baseCode['C'], baseCode['c'] = 1, 1
	baseCode['G'], baseCode['g'] = 2, 2
	baseCode['T'], baseCode['t'] = 3, 3
}

// Encoder accumulates a sliding window of bases into a packed forward kmer
// and its reverse complement. Any byte outside {A,C,G,T} (case-insensitive)
// resets the accumulator; a kmer is ready once k consecutive valid bases
// have been seen.
type Encoder struct {
	k          int
	mask       Key
	rcShift    uint
	forward    Key
	revComp    Key
	validCount int
}

// NewEncoder creates an Encoder for kmers of length k. It panics if k is
// outside [1, KMax], mirroring the teacher's log.Panicf convention for
// programmer-error preconditions.
func NewEncoder(k int) *Encoder {
	if k < 1 || k > KMax {
		log.Panicf("kmer.NewEncoder: invalid k=%d, want 1<=k<=%d", k, KMax)
	}
	e := &Encoder{k: k}
	if k == KMax {
		e.mask = ^Key(0)
	} else {
		e.mask = (Key(1) << uint(2*k)) - 1
	}
	e.rcShift = uint(2 * (k - 1))
	return e
}

// K returns the kmer length this encoder was constructed with.
func (e *Encoder) K() int { return e.k }

// Reset clears the accumulator, as if a run of invalid bases had just been
// seen.
func (e *Encoder) Reset() {
	e.forward = 0
	e.revComp = 0
	e.validCount = 0
}

// Add feeds one base into the accumulator. It returns true iff the
// accumulator now holds a full, ready kmer (k consecutive valid bases
// since the last reset).
func (e *Encoder) Add(base byte) bool {
	code := baseCode[base]
	if code < 0 {
		e.Reset()
		return false
	}
	e.forward = ((e.forward << 2) | Key(code)) & e.mask
	e.revComp = (e.revComp >> 2) | (Key(3-code) << e.rcShift)
	if e.validCount < e.k {
		e.validCount++
	}
	return e.validCount == e.k
}

// Forward returns the packed forward-strand kmer. Valid only when the most
// recent Add returned true.
func (e *Encoder) Forward() Key { return e.forward }

// ReverseComplement returns the packed reverse-complement of the current
// window. Valid only when the most recent Add returned true.
func (e *Encoder) ReverseComplement() Key { return e.revComp }
