// Command gbwt-index-build builds a minimizer index over the sequences in a
// FASTA file and writes it to an output file.
//
// Usage:
//
//	gbwt-index-build -input transcripts.fa -output transcripts.minx -k 19 -w 11
package main

import (
	"context"
	"flag"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/gbwtindex/index"
	"github.com/grailbio/gbwtindex/minimizer"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "FASTA file to index")
		outputPath = flag.String("output", "", "path to write the serialized minimizer index to")
		k          = flag.Int("k", index.DefaultK, "kmer length")
		w          = flag.Int("w", index.DefaultW, "minimizer window length")
	)
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		log.Fatal("-input and -output are required")
	}

	ctx := vcontext.Background()
	tab, err := buildIndex(ctx, *inputPath, *k, *w)
	if err != nil {
		log.Panicf("gbwt-index-build: %v", err)
	}

	out, err := file.Create(ctx, *outputPath)
	if err != nil {
		log.Panicf("gbwt-index-build: create %s: %v", *outputPath, err)
	}
	if err := tab.Serialize(out.Writer(ctx)); err != nil {
		log.Panicf("gbwt-index-build: serialize: %v", err)
	}
	if err := out.Close(ctx); err != nil {
		log.Panicf("gbwt-index-build: close %s: %v", *outputPath, err)
	}

	log.Printf("gbwt-index-build: wrote %s (k=%d w=%d size=%d values=%d)",
		*outputPath, tab.K(), tab.W(), tab.Size(), tab.Values())
}

// buildIndex reads every FASTA record into memory, then indexes them one
// at a time, treating each record as a single graph node numbered from 1 in file order; a
// minimizer's position is packed as (nodeID, isReverse, offset within the
// record). This is the degenerate case of the general graph-indexing
// procedure (one node per record, no edges) for callers that only have raw
// sequence, not a constructed graph.Graph.
func buildIndex(ctx context.Context, inputPath string, k, w int) (*index.Table, error) {
	in, err := file.Open(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck

	records, err := scanFASTA(in.Reader(ctx))
	if err != nil {
		return nil, err
	}

	tab := index.NewWithParams(k, w)
	enum := minimizer.NewEnumerator(k, w)
	for i, rec := range records {
		nodeID := uint64(i + 1)
		enum.Reset(rec.Seq)
		for enum.Scan() {
			m := enum.Get()
			offset := uint64(m.Offset) & index.OffMask
			tab.Insert(m.Key, m.Hash, index.Encode(nodeID, m.IsReverse, offset))
		}
	}
	return tab, nil
}
