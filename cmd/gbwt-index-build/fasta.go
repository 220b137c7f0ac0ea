package main

import (
	"bufio"
	"io"
	"strings"
)

// fastaRecord is one sequence read from a FASTA file: its header line
// (without the leading '>') and its concatenated sequence (newlines
// stripped, case preserved).
type fastaRecord struct {
	Name string
	Seq  string
}

// scanFASTA reads a minimal FASTA stream: header lines start with '>', and
// every other line is sequence data appended to the current record. This
// is deliberately narrower than a general-purpose FASTA reader — it has no
// index, no random access, and no quality scores — since the index
// builder only ever needs one streaming pass.
func scanFASTA(r io.Reader) ([]fastaRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var records []fastaRecord
	var cur *fastaRecord
	var seq strings.Builder

	flush := func() {
		if cur != nil {
			cur.Seq = seq.String()
			records = append(records, *cur)
			seq.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			cur = &fastaRecord{Name: strings.TrimSpace(line[1:])}
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	flush()
	return records, scanner.Err()
}
