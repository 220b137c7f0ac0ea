package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionRoundTrip(t *testing.T) {
	cases := []struct {
		nodeID      uint64
		orientation bool
		offset      uint64
	}{
		{1, false, 0},
		{1, true, 0},
		{42, false, 17},
		{42, true, 1023},
		{1 << 40, false, 5},
	}
	for _, c := range cases {
		p := Encode(c.nodeID, c.orientation, c.offset)
		require.NotEqual(t, NoValue, p)
		nodeID, orientation, offset := Decode(p)
		require.Equal(t, c.nodeID, nodeID)
		require.Equal(t, c.orientation, orientation)
		require.Equal(t, c.offset, offset)
	}
}

func TestPositionOffsetTruncates(t *testing.T) {
	p := Encode(1, false, OffMask+5)
	_, _, offset := Decode(p)
	require.Equal(t, uint64(5), offset)
}

func TestNoValueIsZero(t *testing.T) {
	require.Equal(t, Position(0), NoValue)
}
