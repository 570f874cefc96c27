// Package orfdb stores scanned ORF locations in a compact binary record
// file, so a reader never needs to re-open or re-scan the source FASTA.
package orfdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/grailbio/seqorf/orf"
)

const (
	fileVersionHeader = "seqorfversion"
	fileVersion       = "SEQORF_ORFDB_V1"
)

// Entry is one (sequence, location) pair: the sequence name the location
// was found in, the location itself, and the base view at scan time.
type Entry struct {
	SeqName  string
	Location orf.SequenceLocation
	View     []byte
}

// WriterOpts configures NewWriter.
type WriterOpts struct {
	// Transform, when true, compresses records with recordiozstd, matching
	// the lineage's -transform flag on its own recordio writers.
	Transform bool
}

// Writer appends Entry records to an underlying recordio stream. A Writer
// is not safe for concurrent Append calls; callers that produce entries on
// multiple goroutines must funnel them through a single writer goroutine.
type Writer struct {
	w recordio.Writer
}

// NewWriter wraps w in a recordio.Writer and stamps the format's version
// header.
func NewWriter(w io.Writer, opts WriterOpts) *Writer {
	recordiozstd.Init()
	var transformers []string
	if opts.Transform {
		transformers = []string{recordiozstd.Name}
	}
	rw := recordio.NewWriter(w, recordio.WriterOpts{Transformers: transformers})
	rw.AddHeader(fileVersionHeader, fileVersion)
	return &Writer{w: rw}
}

// Append serializes one entry and writes it as the next record. Append
// itself cannot fail on a well-formed Entry; an underlying I/O error
// surfaces from Finish.
func (w *Writer) Append(seqName string, loc orf.SequenceLocation, view []byte) error {
	w.w.Append(marshal(seqName, loc, view))
	return nil
}

// Finish flushes any buffered data and closes the record stream. It must
// be called exactly once, after the last Append.
func (w *Writer) Finish() error {
	return w.w.Finish()
}

// Reader replays Entry records written by Writer, in append order.
type Reader struct {
	r   recordio.Scanner
	cur Entry
	err error
}

// NewReader wraps r in a recordio.Scanner and verifies the format's
// version header.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	recordiozstd.Init()
	rs := recordio.NewScanner(r, recordio.ScannerOpts{})
	versionFound := false
	for _, kv := range rs.Header() {
		if kv.Key == fileVersionHeader {
			if v, ok := kv.Value.(string); !ok || v != fileVersion {
				return nil, errors.E(fmt.Errorf("orfdb: version mismatch, got %v, want %v", kv.Value, fileVersion))
			}
			versionFound = true
			break
		}
	}
	if !versionFound {
		return nil, errors.E(fmt.Errorf("orfdb: missing version header; not an orfdb file"))
	}
	return &Reader{r: rs}, nil
}

// Scan advances to the next record, returning false at end of stream or on
// error; check Err to distinguish the two.
func (r *Reader) Scan() bool {
	if !r.r.Scan() {
		return false
	}
	entry, err := unmarshal(r.r.Get().([]byte))
	if err != nil {
		r.err = errors.E(err, "orfdb: corrupt record")
		return false
	}
	r.cur = entry
	return true
}

// Record returns the entry most recently produced by Scan.
func (r *Reader) Record() Entry { return r.cur }

// Err returns the first error encountered, from either unmarshaling a
// record or the underlying recordio.Scanner.
func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.r.Err()
}

// marshal encodes one entry as: uint32 name length + name bytes; uint32 ID;
// int64 From; int64 To; int32 Strand; uint8 HasIncompleteStart; uint8
// HasIncompleteEnd; uint32 view length + view bytes.
func marshal(seqName string, loc orf.SequenceLocation, view []byte) []byte {
	var buf bytes.Buffer
	writeString(&buf, seqName)
	_ = binary.Write(&buf, binary.LittleEndian, loc.ID)
	_ = binary.Write(&buf, binary.LittleEndian, int64(loc.From))
	_ = binary.Write(&buf, binary.LittleEndian, int64(loc.To))
	_ = binary.Write(&buf, binary.LittleEndian, int32(loc.Strand))
	buf.WriteByte(b2u8(loc.HasIncompleteStart))
	buf.WriteByte(b2u8(loc.HasIncompleteEnd))
	writeBytes(&buf, view)
	return buf.Bytes()
}

func unmarshal(b []byte) (Entry, error) {
	r := bytes.NewReader(b)
	seqName, err := readString(r)
	if err != nil {
		return Entry{}, err
	}
	var id uint32
	var from, to int64
	var strand int32
	var incompleteStart, incompleteEnd byte
	for _, field := range []interface{}{&id, &from, &to, &strand} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return Entry{}, err
		}
	}
	if incompleteStart, err = r.ReadByte(); err != nil {
		return Entry{}, err
	}
	if incompleteEnd, err = r.ReadByte(); err != nil {
		return Entry{}, err
	}
	view, err := readBytes(r)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		SeqName: seqName,
		Location: orf.SequenceLocation{
			ID:                 id,
			From:               int(from),
			To:                 int(to),
			Strand:             orf.Strand(strand),
			HasIncompleteStart: incompleteStart != 0,
			HasIncompleteEnd:   incompleteEnd != 0,
		},
		View: view,
	}, nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeBytes(buf, []byte(s))
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(b)))
	buf.Write(b)
}

func readString(r *bytes.Reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func b2u8(b bool) byte {
	if b {
		return 1
	}
	return 0
}
