package index

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/grailbio/gbwtindex/kmer"
)

func buildSample() *Table {
	tab := NewWithParams(19, 11)
	for i := 0; i < 30; i++ {
		key := kmer.Key(i + 1)
		h := kmer.Hash64(key)
		tab.Insert(key, h, Encode(uint64(i+1), false, uint64(i%16)))
	}
	// give a couple of keys a second position, to exercise the multi-cell
	// shape and its length-prefixed list encoding.
	tab.Insert(kmer.Key(1), kmer.Hash64(kmer.Key(1)), Encode(999, true, 2))
	tab.Insert(kmer.Key(2), kmer.Hash64(kmer.Key(2)), Encode(998, true, 2))
	return tab
}

func TestSerializeRoundTrip(t *testing.T) {
	tab := buildSample()

	var buf bytes.Buffer
	require.NoError(t, tab.Serialize(&buf))

	var got Table
	require.NoError(t, got.Deserialize(bytes.NewReader(buf.Bytes())))

	require.True(t, tab.Equal(&got))
	require.Equal(t, tab.K(), got.K())
	require.Equal(t, tab.W(), got.W())
	require.Equal(t, tab.Size(), got.Size())
	require.Equal(t, tab.Values(), got.Values())
}

func TestDeserializeRejectsCorruptedStream(t *testing.T) {
	tab := buildSample()
	var buf bytes.Buffer
	require.NoError(t, tab.Serialize(&buf))

	corrupt := buf.Bytes()
	// Flip the last byte of the stream. That byte lies in recordio's
	// trailing framing, after the compressed table payload, so the inner
	// magic is left intact and detection is up to recordio.
	if len(corrupt) > 20 {
		corrupt[len(corrupt)-1] ^= 0xFF
	}

	var got Table
	_ = got.Deserialize(bytes.NewReader(corrupt))
	// Deserialize must not silently succeed with a table claiming
	// equality to the original when the bytes differ.
	if got.Size() == tab.Size() && got.Equal(tab) {
		t.Fatalf("corruption was not detected")
	}
}

func TestDeserializeEmptyStream(t *testing.T) {
	var got Table
	err := got.Deserialize(bytes.NewReader(nil))
	require.Error(t, err)
}
