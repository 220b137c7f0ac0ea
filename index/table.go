// Package index implements the minimizer hash table: an open-addressing
// map from canonical kmer keys to sets of packed graph positions, with a
// singleton/multi-value cell layout that avoids an allocation for the
// overwhelmingly common one-position case.
//
// The cell shape is grounded on the teacher's fusion/kmer_index.go
// kmerIndexEntry (inlined-vs-outlined discrimination, linear probing), but
// generalized from a static, build-once, 256-way-sharded table into one
// resizable table that rehashes on load, per spec.
package index

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/gbwtindex/kmer"
)

// DefaultK and DefaultW are the construction defaults used by New().
const (
	DefaultK = 19
	DefaultW = 11
)

const (
	initialCapacity = 1024
	maxLoadFactor   = 0.77
)

type cell struct {
	key     kmer.Key
	payload uint64 // singleton: a Position; multi: 1-based index into t.lists
	multi   bool
}

// Table is the resizable open-addressing minimizer index.
//
// Insert is single-writer and takes no lock. Once construction has
// finished, Find, Equal and Serialize only read the table and may be called
// from several goroutines at once.
type Table struct {
	k, w int

	cells        []cell
	capacityMask uint64
	size         int // occupied cells (distinct keys)
	values       int // total positions stored
	uniqueKeys   int // cells in singleton shape
	maxKeys      int // size threshold that triggers a rehash

	lists [][]uint64 // out-of-line value lists for multi cells
}

// New creates an empty Table using DefaultK/DefaultW.
func New() *Table { return NewWithParams(DefaultK, DefaultW) }

// NewWithParams creates an empty Table for the given kmer length k and
// window length w.
func NewWithParams(k, w int) *Table {
	mustValidParams(k, w)
	t := &Table{k: k, w: w}
	t.allocate(initialCapacity)
	return t
}

func (t *Table) allocate(capacity int) {
	t.cells = make([]cell, capacity)
	for i := range t.cells {
		t.cells[i].key = kmer.NoKey
	}
	t.capacityMask = uint64(capacity - 1)
	t.maxKeys = int(maxLoadFactor * float64(capacity))
}

// K returns the configured kmer length.
func (t *Table) K() int { return t.k }

// W returns the configured window length.
func (t *Table) W() int { return t.w }

// Size returns the number of distinct keys inserted.
func (t *Table) Size() int { return t.size }

// Values returns the total number of positions stored across all keys.
func (t *Table) Values() int { return t.values }

// UniqueKeys returns the number of keys that map to exactly one position.
func (t *Table) UniqueKeys() int { return t.uniqueKeys }

// MaxKeys returns the current load-factor threshold; Size growing past it
// triggers a rehash.
func (t *Table) MaxKeys() int { return t.maxKeys }

// Capacity returns the number of slots in the table.
func (t *Table) Capacity() int { return len(t.cells) }

func (t *Table) probeStart(hash uint64) uint64 { return hash & t.capacityMask }

// Insert adds position p under key (whose hash is the same Wang-mixer value
// used to order minimizers, reused here as the probe hash). Inserting
// kmer.NoKey or index.NoValue is a silent no-op, matching spec's sentinel
// neutrality invariant. Duplicate (key, p) pairs are idempotent.
func (t *Table) Insert(key kmer.Key, hash uint64, p Position) {
	if key == kmer.NoKey || p == NoValue {
		return
	}
	idx := t.probeStart(hash)
	for {
		c := &t.cells[idx]
		if c.key == kmer.NoKey {
			c.key = key
			c.payload = uint64(p)
			c.multi = false
			t.size++
			t.values++
			t.uniqueKeys++
			if t.size > t.maxKeys {
				t.rehash()
			}
			return
		}
		if c.key == key {
			t.insertInto(c, p)
			return
		}
		idx = (idx + 1) & t.capacityMask
	}
}

func (t *Table) insertInto(c *cell, p Position) {
	if !c.multi {
		existing := Position(c.payload)
		if existing == p {
			return // duplicate insert of an already-present singleton
		}
		a, b := existing, p
		if b < a {
			a, b = b, a
		}
		t.lists = append(t.lists, []uint64{uint64(a), uint64(b)})
		c.payload = uint64(len(t.lists)) // 1-based
		c.multi = true
		t.values++
		t.uniqueKeys--
		return
	}
	list := t.lists[c.payload-1]
	v := uint64(p)
	i := sort.Search(len(list), func(i int) bool { return list[i] >= v })
	if i < len(list) && list[i] == v {
		return // already present
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = v
	t.lists[c.payload-1] = list
	t.values++
}

// Find returns the ascending-by-packed-position list of positions stored
// under key, or nil if key was never inserted (or is kmer.NoKey).
func (t *Table) Find(key kmer.Key, hash uint64) []Position {
	if key == kmer.NoKey {
		return nil
	}
	idx := t.probeStart(hash)
	for {
		c := &t.cells[idx]
		if c.key == kmer.NoKey {
			return nil
		}
		if c.key == key {
			if !c.multi {
				return []Position{Position(c.payload)}
			}
			list := t.lists[c.payload-1]
			out := make([]Position, len(list))
			for i, v := range list {
				out[i] = Position(v)
			}
			return out
		}
		idx = (idx + 1) & t.capacityMask
	}
}

// rehash doubles capacity and reinserts every occupied cell. Multi-value
// lists are not copied: the cell moves with its 1-based list index
// unchanged, so ownership of the underlying slice transfers intact.
func (t *Table) rehash() {
	oldCells := t.cells
	t.allocate(len(oldCells) * 2)
	for _, c := range oldCells {
		if c.key == kmer.NoKey {
			continue
		}
		h := kmer.Hash64(c.key)
		idx := t.probeStart(h)
		for t.cells[idx].key != kmer.NoKey {
			idx = (idx + 1) & t.capacityMask
		}
		t.cells[idx] = c
	}
}

// Swap exchanges the contents of t and other in place.
func (t *Table) Swap(other *Table) {
	*t, *other = *other, *t
}

// Equal reports whether t and other have the same (k, w) parameters and,
// as mappings from key to the set of associated positions, are identical.
// The underlying slot permutation is not part of identity.
func (t *Table) Equal(other *Table) bool {
	if t.k != other.k || t.w != other.w {
		return false
	}
	if t.size != other.size || t.values != other.values {
		return false
	}
	for _, c := range t.cells {
		if c.key == kmer.NoKey {
			continue
		}
		a := t.positionsOf(c)
		b := other.Find(c.key, kmer.Hash64(c.key))
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

func (t *Table) positionsOf(c cell) []Position {
	if !c.multi {
		return []Position{Position(c.payload)}
	}
	list := t.lists[c.payload-1]
	out := make([]Position, len(list))
	for i, v := range list {
		out[i] = Position(v)
	}
	return out
}

// mustValidParams panics (programmer error, per the teacher's log.Panicf
// convention) if k/w fall outside what this table can represent.
func mustValidParams(k, w int) {
	if k < 1 || k > kmer.KMax {
		log.Panicf("index: invalid k=%d", k)
	}
	if w < 1 {
		log.Panicf("index: invalid w=%d", w)
	}
}
