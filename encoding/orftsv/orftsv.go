// Package orftsv exports and imports orfdb entries as a tab-separated
// table, for callers that want to inspect or post-process ORF calls with
// ordinary text tools instead of the binary orfdb format.
package orftsv

import (
	"io"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/seqorf/encoding/orfdb"
	"github.com/grailbio/seqorf/orf"
)

// Row is one orftsv line. Strand and the two incomplete flags are stored
// numerically rather than as bool, since tsv round-trips basic scalar
// types most reliably.
type Row struct {
	SeqName            string `tsv:"seq_name"`
	From               int64  `tsv:"from"`
	To                 int64  `tsv:"to"`
	Strand             int64  `tsv:"strand"`
	HasIncompleteStart int64  `tsv:"has_incomplete_start"`
	HasIncompleteEnd   int64  `tsv:"has_incomplete_end"`
	Length             int64  `tsv:"length"`
	Sequence           string `tsv:"sequence"`
}

// WriteAll writes one header row followed by one row per entry.
func WriteAll(w io.Writer, entries []orfdb.Entry) error {
	tw := tsv.NewWriter(w)

	tw.WriteString("seq_name")
	tw.WriteString("from")
	tw.WriteString("to")
	tw.WriteString("strand")
	tw.WriteString("has_incomplete_start")
	tw.WriteString("has_incomplete_end")
	tw.WriteString("length")
	tw.WriteString("sequence")
	if err := tw.EndLine(); err != nil {
		return err
	}

	for _, e := range entries {
		row := toRow(e)
		tw.WriteString(row.SeqName)
		tw.WriteInt64(row.From)
		tw.WriteInt64(row.To)
		tw.WriteInt64(row.Strand)
		tw.WriteInt64(row.HasIncompleteStart)
		tw.WriteInt64(row.HasIncompleteEnd)
		tw.WriteInt64(row.Length)
		tw.WriteString(row.Sequence)
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// ReadAll is the inverse of WriteAll, tolerant of the header row WriteAll
// produces.
func ReadAll(r io.Reader) ([]orfdb.Entry, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true

	var entries []orfdb.Entry
	for {
		var row Row
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		entries = append(entries, fromRow(row))
	}
	return entries, nil
}

func toRow(e orfdb.Entry) Row {
	return Row{
		SeqName:            e.SeqName,
		From:               int64(e.Location.From),
		To:                 int64(e.Location.To),
		Strand:             int64(e.Location.Strand),
		HasIncompleteStart: b2i64(e.Location.HasIncompleteStart),
		HasIncompleteEnd:   b2i64(e.Location.HasIncompleteEnd),
		Length:             int64(e.Location.To - e.Location.From),
		Sequence:           string(e.View),
	}
}

func fromRow(row Row) orfdb.Entry {
	return orfdb.Entry{
		SeqName: row.SeqName,
		Location: orf.SequenceLocation{
			From:               int(row.From),
			To:                 int(row.To),
			Strand:             orf.Strand(row.Strand),
			HasIncompleteStart: row.HasIncompleteStart != 0,
			HasIncompleteEnd:   row.HasIncompleteEnd != 0,
		},
		View: []byte(row.Sequence),
	}
}

func b2i64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
