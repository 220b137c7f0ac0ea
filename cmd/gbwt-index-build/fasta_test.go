package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanFASTA(t *testing.T) {
	input := ">seq1 some description\nACGT\nACGT\n>seq2\nTTTT\n"
	records, err := scanFASTA(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "seq1 some description", records[0].Name)
	require.Equal(t, "ACGTACGT", records[0].Seq)
	require.Equal(t, "seq2", records[1].Name)
	require.Equal(t, "TTTT", records[1].Seq)
}

func TestScanFASTAEmpty(t *testing.T) {
	records, err := scanFASTA(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestScanFASTAIgnoresBlankLines(t *testing.T) {
	input := ">seq1\nACGT\n\nACGT\n"
	records, err := scanFASTA(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "ACGTACGT", records[0].Seq)
}
