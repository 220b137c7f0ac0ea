package kmer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, k int, seq string) []Key {
	t.Helper()
	e := NewEncoder(k)
	var out []Key
	for i := 0; i < len(seq); i++ {
		if e.Add(seq[i]) {
			out = append(out, e.Forward())
		}
	}
	return out
}

func TestEncoderBasic(t *testing.T) {
	// AAT -> A=0 C=1 G=2 T=3 packed MSB-first: 0*16+0*4+3 = 3.
	keys := scanAll(t, 3, "AAT")
	require.Equal(t, []Key{3}, keys)
}

func TestEncoderResetsOnInvalidBase(t *testing.T) {
	e := NewEncoder(3)
	require.False(t, e.Add('A'))
	require.False(t, e.Add('A'))
	require.True(t, e.Add('T'))
	require.False(t, e.Add('N')) // reset
	require.False(t, e.Add('A'))
	require.False(t, e.Add('A'))
	require.True(t, e.Add('T'))
}

func TestEncoderReverseComplement(t *testing.T) {
	e := NewEncoder(3)
	e.Add('A')
	e.Add('A')
	e.Add('T') // forward = AAT = 3
	require.Equal(t, Key(3), e.Forward())
	// reverse complement of AAT is ATT: A=0,T=3,T=3 -> 0*16+3*4+3 = 15.
	require.Equal(t, Key(15), e.ReverseComplement())
}

func TestEncoderPanicsOnBadK(t *testing.T) {
	require.Panics(t, func() { NewEncoder(0) })
	require.Panics(t, func() { NewEncoder(KMax + 1) })
}

func TestCanonicalPicksSmaller(t *testing.T) {
	key, isRev := Canonical(Key(3), Key(15))
	require.Equal(t, Key(3), key)
	require.False(t, isRev)

	key, isRev = Canonical(Key(15), Key(3))
	require.Equal(t, Key(3), key)
	require.True(t, isRev)
}

func TestCanonicalTieGoesForward(t *testing.T) {
	key, isRev := Canonical(Key(5), Key(5))
	require.Equal(t, Key(5), key)
	require.False(t, isRev)
}

func TestHash64Deterministic(t *testing.T) {
	require.Equal(t, Hash64(Key(42)), Hash64(Key(42)))
	require.NotEqual(t, Hash64(Key(42)), Hash64(Key(43)))
}
