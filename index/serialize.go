package index

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/grailbio/gbwtindex/kmer"
)

// Serialization layout, little-endian throughout:
//
//	magic uint32, formatVersion uint32
//	k, w uint32
//	capacity, size, values, uniqueKeys uint64
//	capacity * cell{ key uint64, payload uint64, shape uint8 (unpadded) }
//	len(lists) uint64
//	for each list: length uint32, length * uint64 positions
//
// The header does not record OffBits; a reader assumes the OffBits of the
// build that reads it.
//
// The whole thing is written as a single recordio record (magic/version
// guard the payload itself; recordio's own framing guards the outer file),
// following the teacher's WriteBaseStrandsRio/ReadBaseStrandsRio pattern in
// pileup/snp/basestrand.go: a Marshal/Unmarshal function pair plus a
// version int written into a trailer.

const (
	formatMagic   uint32 = 0x4D494E58 // "MINX"
	formatVersion uint32 = 1
)

func init() {
	recordiozstd.Init()
}

type tableBlob struct {
	data []byte
}

func marshalTableBlob(scratch []byte, p interface{}) ([]byte, error) {
	return p.(*tableBlob).data, nil
}

func unmarshalTableBlob(in []byte) (interface{}, error) {
	return &tableBlob{data: append([]byte(nil), in...)}, nil
}

// Serialize writes the table to out in the layout documented above.
func (t *Table) Serialize(out io.Writer) error {
	var buf bytes.Buffer
	write := func(v interface{}) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	write(formatMagic)
	write(formatVersion)
	write(uint32(t.k))
	write(uint32(t.w))
	write(uint64(len(t.cells)))
	write(uint64(t.size))
	write(uint64(t.values))
	write(uint64(t.uniqueKeys))

	for _, c := range t.cells {
		write(uint64(c.key))
		write(c.payload)
		var shape uint8
		if c.multi {
			shape = 1
		}
		write(shape)
	}

	write(uint64(len(t.lists)))
	for _, list := range t.lists {
		write(uint32(len(list)))
		for _, v := range list {
			write(v)
		}
	}

	w := recordio.NewWriter(out, recordio.WriterOpts{
		Marshal:      marshalTableBlob,
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(recordio.KeyTrailer, true)
	w.Append(&tableBlob{data: buf.Bytes()})
	w.SetTrailer([]byte{byte(formatVersion)})
	return w.Finish()
}

// Deserialize reads a table written by Serialize, leaving t in a defined
// empty state (k=w=0, no cells) if the stream's magic/version do not match.
func (t *Table) Deserialize(in io.ReadSeeker) error {
	scanner := recordio.NewScanner(in, recordio.ScannerOpts{Unmarshal: unmarshalTableBlob})
	if !scanner.Scan() {
		*t = Table{}
		if err := scanner.Err(); err != nil {
			return errors.E(err, "index.Deserialize: failed to read record")
		}
		return errors.E("index.Deserialize: empty stream")
	}
	data := scanner.Get().(*tableBlob).data
	r := bytes.NewReader(data)
	read := func(v interface{}) error { return binary.Read(r, binary.LittleEndian, v) }

	var magic, version uint32
	if err := read(&magic); err != nil {
		*t = Table{}
		return errors.E(err, "index.Deserialize: short header")
	}
	if err := read(&version); err != nil {
		*t = Table{}
		return errors.E(err, "index.Deserialize: short header")
	}
	if magic != formatMagic {
		*t = Table{}
		return errors.E("index.Deserialize: bad magic, not a minimizer index file")
	}
	if version != formatVersion {
		*t = Table{}
		return errors.E("index.Deserialize: unsupported format version")
	}

	var kw32 [2]uint32
	var capacity, size, values, uniqueKeys uint64
	if err := read(&kw32[0]); err != nil {
		*t = Table{}
		return errors.E(err, "index.Deserialize: short header")
	}
	if err := read(&kw32[1]); err != nil {
		*t = Table{}
		return errors.E(err, "index.Deserialize: short header")
	}
	for _, p := range []*uint64{&capacity, &size, &values, &uniqueKeys} {
		if err := read(p); err != nil {
			*t = Table{}
			return errors.E(err, "index.Deserialize: short header")
		}
	}

	cells := make([]cell, capacity)
	for i := range cells {
		var key, payload uint64
		var shape uint8
		if err := read(&key); err != nil {
			*t = Table{}
			return errors.E(err, "index.Deserialize: truncated cell table")
		}
		if err := read(&payload); err != nil {
			*t = Table{}
			return errors.E(err, "index.Deserialize: truncated cell table")
		}
		if err := read(&shape); err != nil {
			*t = Table{}
			return errors.E(err, "index.Deserialize: truncated cell table")
		}
		cells[i] = cell{key: kmer.Key(key), payload: payload, multi: shape != 0}
	}

	var numLists uint64
	if err := read(&numLists); err != nil {
		*t = Table{}
		return errors.E(err, "index.Deserialize: truncated list count")
	}
	lists := make([][]uint64, numLists)
	for i := range lists {
		var n uint32
		if err := read(&n); err != nil {
			*t = Table{}
			return errors.E(err, "index.Deserialize: truncated list")
		}
		list := make([]uint64, n)
		for j := range list {
			if err := read(&list[j]); err != nil {
				*t = Table{}
				return errors.E(err, "index.Deserialize: truncated list")
			}
		}
		lists[i] = list
	}

	t.k = int(kw32[0])
	t.w = int(kw32[1])
	t.cells = cells
	t.capacityMask = capacity - 1
	t.size = int(size)
	t.values = int(values)
	t.uniqueKeys = int(uniqueKeys)
	t.maxKeys = int(maxLoadFactor * float64(capacity))
	t.lists = lists
	return nil
}
