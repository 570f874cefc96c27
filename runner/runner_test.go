package runner

import (
	"testing"

	"github.com/grailbio/seqorf/encoding/fasta"
	"github.com/grailbio/seqorf/orf"
)

func testRecords() []fasta.Record {
	return []fasta.Record{
		{Name: "s0", Bases: []byte("ATGAAATAA")},
		{Name: "s1", Bases: []byte("TATGAAAGGG")},
		{Name: "s2", Bases: []byte("ATGTAAATGAAATAA")},
		{Name: "s3", Bases: []byte("AT")}, // too short
		{Name: "s4", Bases: []byte("ATGCCCTGATTTAAA")},
		{Name: "s5", Bases: []byte("GGGATGAAATAACCC")},
		{Name: "s6", Bases: []byte("CATGAAATAAG")},
		{Name: "s7", Bases: []byte("TTTATGGGGTAACCC")},
	}
}

func TestFindAllConcurrentOrderMatchesInput(t *testing.T) {
	records := testRecords()
	results := FindAllConcurrent(records, orf.FindOpts{ForwardFrames: orf.AllFrames}, 4)
	if len(results) != len(records) {
		t.Fatalf("got %d results, want %d", len(results), len(records))
	}
	for i, r := range results {
		if r.SeqIndex != i {
			t.Errorf("result %d has SeqIndex %d", i, r.SeqIndex)
		}
		if r.SeqName != records[i].Name {
			t.Errorf("result %d has SeqName %q, want %q", i, r.SeqName, records[i].Name)
		}
	}
	if results[3].Err == nil {
		t.Error("expected an error for the too-short record")
	}
}

func TestFindAllConcurrentDeterministicAcrossParallelism(t *testing.T) {
	records := testRecords()
	opts := orf.FindOpts{ForwardFrames: orf.AllFrames, ReverseFrames: orf.AllFrames}

	serial := FindAllConcurrent(records, opts, 1)
	parallel := FindAllConcurrent(records, opts, 8)

	if len(serial) != len(parallel) {
		t.Fatalf("serial has %d results, parallel has %d", len(serial), len(parallel))
	}
	for i := range serial {
		a, b := serial[i], parallel[i]
		if a.SeqName != b.SeqName || len(a.Locations) != len(b.Locations) {
			t.Fatalf("result %d diverges: serial=%+v parallel=%+v", i, a, b)
		}
		for j := range a.Locations {
			if a.Locations[j] != b.Locations[j] {
				t.Errorf("result %d location %d diverges: serial=%+v parallel=%+v",
					i, j, a.Locations[j], b.Locations[j])
			}
		}
	}
}

func TestFindAllConcurrentEmptyInput(t *testing.T) {
	results := FindAllConcurrent(nil, orf.FindOpts{ForwardFrames: orf.AllFrames}, 4)
	if len(results) != 0 {
		t.Errorf("got %d results for empty input, want 0", len(results))
	}
}

func TestFindAllConcurrentParallelismExceedsRecordCount(t *testing.T) {
	records := testRecords()[:2]
	results := FindAllConcurrent(records, orf.FindOpts{ForwardFrames: orf.AllFrames}, 16)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}
