package orftsv

import (
	"bytes"
	"testing"

	"github.com/grailbio/seqorf/encoding/orfdb"
	"github.com/grailbio/seqorf/orf"
)

func testEntries() []orfdb.Entry {
	return []orfdb.Entry{
		{
			SeqName: "chr1",
			Location: orf.SequenceLocation{
				From: 0, To: 30, Strand: orf.Plus,
				HasIncompleteStart: false, HasIncompleteEnd: true,
			},
			View: []byte("ATGAAACCCGGGTTTAAACCCGGGTTTAAA"),
		},
		{
			SeqName: "chr2",
			Location: orf.SequenceLocation{
				From: 10, To: 16, Strand: orf.Minus,
				HasIncompleteStart: true, HasIncompleteEnd: false,
			},
			View: []byte("ATGTAA"),
		},
	}
}

func TestWriteAllReadAllRoundTrip(t *testing.T) {
	entries := testEntries()

	var buf bytes.Buffer
	if err := WriteAll(&buf, entries); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := ReadAll(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(got), len(entries))
	}
	for i := range got {
		g, w := got[i], entries[i]
		if g.SeqName != w.SeqName {
			t.Errorf("entry %d: SeqName = %q, want %q", i, g.SeqName, w.SeqName)
		}
		if g.Location.From != w.Location.From || g.Location.To != w.Location.To {
			t.Errorf("entry %d: From/To = %d/%d, want %d/%d", i, g.Location.From, g.Location.To, w.Location.From, w.Location.To)
		}
		if g.Location.Strand != w.Location.Strand {
			t.Errorf("entry %d: Strand = %v, want %v", i, g.Location.Strand, w.Location.Strand)
		}
		if g.Location.HasIncompleteStart != w.Location.HasIncompleteStart || g.Location.HasIncompleteEnd != w.Location.HasIncompleteEnd {
			t.Errorf("entry %d: incomplete flags = %v/%v, want %v/%v", i,
				g.Location.HasIncompleteStart, g.Location.HasIncompleteEnd,
				w.Location.HasIncompleteStart, w.Location.HasIncompleteEnd)
		}
		if string(g.View) != string(w.View) {
			t.Errorf("entry %d: View = %q, want %q", i, g.View, w.View)
		}
	}
}

func TestWriteAllEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAll(&buf, nil); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	got, err := ReadAll(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadAll() = %+v, want no entries", got)
	}
}
