package orf

import "testing"

func find(t *testing.T, seq string, opts FindOpts) []SequenceLocation {
	t.Helper()
	var c Container
	if !c.Set([]byte(seq)) {
		t.Fatalf("Set(%q) = false, want true", seq)
	}
	return c.FindAll(opts)
}

// S1 — single clean ORF, Frame1. The stop codon (positions 6-8) is also the
// frame's last codon, so closure includes its 3 bytes (end-of-buffer
// inclusion applies regardless of the closing codon being a stop) and
// there is no further position in the frame to re-open a trailing
// fragment.
func TestScanS1SingleCleanORF(t *testing.T) {
	got := find(t, "ATGAAATAA", FindOpts{ForwardFrames: AllFrames})
	var frame1 []SequenceLocation
	for _, l := range got {
		if l.From%3 == 0 {
			frame1 = append(frame1, l)
		}
	}
	want := []SequenceLocation{
		{From: 0, To: 9, Strand: Plus, HasIncompleteStart: false, HasIncompleteEnd: false},
	}
	assertLocations(t, frame1, want)
}

// S2 — no stop in Frame2; ORF runs to buffer end.
func TestScanS2NoStopInFrame2(t *testing.T) {
	got := find(t, "TATGAAAGGG", FindOpts{ForwardFrames: AllFrames})
	var frame2 []SequenceLocation
	for _, l := range got {
		if l.From%3 == 1 {
			frame2 = append(frame2, l)
		}
	}
	want := []SequenceLocation{
		{From: 1, To: 10, Strand: Plus, HasIncompleteStart: false, HasIncompleteEnd: true},
	}
	assertLocations(t, frame2, want)
}

// S3 — ambiguity filter: a gap codon violates MaxGaps unless raised.
func TestScanS3AmbiguityFilter(t *testing.T) {
	gotStrict := find(t, "ATGNNNTAA", FindOpts{ForwardFrames: AllFrames, MaxGaps: 0})
	for _, l := range gotStrict {
		if l.From == 0 {
			t.Errorf("MaxGaps=0: unexpected Frame1 ORF %+v, should be discarded for gap_count>0", l)
		}
	}

	gotLenient := find(t, "ATGNNNTAA", FindOpts{ForwardFrames: AllFrames, MaxGaps: 1})
	found := false
	for _, l := range gotLenient {
		if l.From == 0 && l.To == 9 {
			found = true
		}
	}
	if !found {
		t.Errorf("MaxGaps=1: expected Frame1 ORF {0,9}, got %+v", gotLenient)
	}
}

// S4 — ExtendStart picks the earliest actual start codon within a
// stop-bounded region, instead of reopening at the first position after the
// stop regardless of whether it holds a start codon.
//
// Frame1 of "AAATAAGGGATGCCCTAA" reads AAA-TAA-GGG-ATG-CCC-TAA: a stop at
// codon 2 (TAA), then a non-start codon (GGG) immediately followed by an
// actual start (ATG), then a second stop.
func TestScanS4ExtendStart(t *testing.T) {
	seq := "AAATAAGGGATGCCCTAA"

	without := find(t, seq, FindOpts{ForwardFrames: Frame1})
	wantWithout := []SequenceLocation{
		{From: 0, To: 3, Strand: Plus, HasIncompleteStart: true, HasIncompleteEnd: false},
		{From: 6, To: 18, Strand: Plus, HasIncompleteStart: true, HasIncompleteEnd: false},
	}
	assertLocations(t, without, wantWithout)

	with := find(t, seq, FindOpts{ForwardFrames: Frame1, Extend: ExtendStart})
	wantWith := []SequenceLocation{
		{From: 0, To: 3, Strand: Plus, HasIncompleteStart: true, HasIncompleteEnd: false},
		{From: 9, To: 18, Strand: Plus, HasIncompleteStart: false, HasIncompleteEnd: false},
	}
	assertLocations(t, with, wantWith)
}

// S5 — ExtendEnd skips an early stop that would produce too short an ORF.
func TestScanS5ExtendEnd(t *testing.T) {
	seq := "ATGTAAATGAAATAA"
	without := find(t, seq, FindOpts{ForwardFrames: AllFrames, MinLength: 2})
	for _, l := range without {
		if l.From == 0 {
			t.Errorf("without ExtendEnd: unexpected Frame1 ORF %+v, should be filtered by MinLength", l)
		}
	}

	with := find(t, seq, FindOpts{ForwardFrames: AllFrames, MinLength: 2, Extend: ExtendEnd})
	found := false
	for _, l := range with {
		if l.From == 0 && l.To == 15 {
			found = true
		}
	}
	if !found {
		t.Errorf("with ExtendEnd: expected Frame1 ORF {0,15}, got %+v", with)
	}
}

// S6 — reverse-complement round trip is one-way across the RNA/DNA boundary.
func TestScanS6ReverseComplementAsymmetry(t *testing.T) {
	var c Container
	if !c.Set([]byte("ACGTU")) {
		t.Fatal("Set(ACGTU) = false, want true")
	}
	rev := c.View(SequenceLocation{From: 0, To: 5, Strand: Minus})
	if rev != "AACGT" {
		t.Fatalf("reverse complement of ACGTU = %q, want AACGT", rev)
	}

	var c2 Container
	if !c2.Set([]byte(rev)) {
		t.Fatal("Set(AACGT) = false, want true")
	}
	back := c2.View(SequenceLocation{From: 0, To: 5, Strand: Minus})
	if back != "ACGTT" {
		t.Errorf("complementing AACGT again = %q, want ACGTT (U->A is one-way)", back)
	}
	if back == "ACGTU" {
		t.Error("round trip should not reproduce the original RNA base")
	}
}

func TestScanShortInputRejected(t *testing.T) {
	var c Container
	if c.Set([]byte("AT")) {
		t.Error("Set of a 2-base sequence should fail")
	}
	if c.Set(nil) {
		t.Error("Set of an empty sequence should fail")
	}
}

func TestScanInvalidAlphabetRejected(t *testing.T) {
	var c Container
	if c.Set([]byte("ATG XYZ")) {
		t.Error("Set with a non-IUPAC byte should fail")
	}
}

func TestScanReverseFrameMaskGatesStrand(t *testing.T) {
	var c Container
	if !c.Set([]byte("ATGAAATAA")) {
		t.Fatal("Set failed")
	}
	fwdOnly := c.FindAll(FindOpts{ForwardFrames: AllFrames})
	for _, l := range fwdOnly {
		if l.Strand == Minus {
			t.Errorf("ReverseFrames=0 should disable reverse strand scan, got %+v", l)
		}
	}
	both := c.FindAll(FindOpts{ForwardFrames: AllFrames, ReverseFrames: AllFrames})
	if len(both) <= len(fwdOnly) {
		t.Errorf("enabling ReverseFrames should add locations: fwd=%d both=%d", len(fwdOnly), len(both))
	}
}

// Invariant: every emitted location satisfies 0 <= From < To <= length.
func TestScanInvariantsHoldOverManySequences(t *testing.T) {
	seqs := []string{
		"ATGAAATAAATGCCCTAACTGATGNNNTGA",
		"TTTTATGAAACCCGGGTAAAAAA",
		"ATGATGATGATGATGATGATGATG",
		"GGGCCCATGTTTTAAAAATAGGGGTGA",
	}
	for _, seq := range seqs {
		var c Container
		if !c.Set([]byte(seq)) {
			t.Fatalf("Set(%q) failed", seq)
		}
		locs := c.FindAll(FindOpts{ForwardFrames: AllFrames, ReverseFrames: AllFrames, MaxGaps: 10})
		for _, l := range locs {
			if l.From < 0 || l.To <= l.From || l.To > len(seq) {
				t.Errorf("seq %q: location %+v out of bounds", seq, l)
			}
		}
	}
}

// Invariant 5: the set of ORFs found on the reverse strand equals the set
// the forward scanner would find if handed the reverse complement of the
// input directly, once each location's Strand is normalized away.
func TestScanInvariantReverseEqualsForwardOnComplement(t *testing.T) {
	seqs := []string{
		"ATGAAATAAATGCCCTAACTGATGNNNTGA",
		"TTTTATGAAACCCGGGTAAAAAA",
		"ATGATGATGATGATGATGATGATG",
		"GGGCCCATGTTTTAAAAATAGGGGTGA",
	}
	opts := FindOpts{ForwardFrames: AllFrames, ReverseFrames: AllFrames, MaxGaps: 10}

	for _, seq := range seqs {
		var c Container
		if !c.Set([]byte(seq)) {
			t.Fatalf("Set(%q) failed", seq)
		}
		var reverseOnly []SequenceLocation
		for _, l := range c.FindAll(opts) {
			if l.Strand == Minus {
				reverseOnly = append(reverseOnly, l)
			}
		}

		rc, ok := reverseComplementBytes([]byte(seq))
		if !ok {
			t.Fatalf("reverseComplementBytes(%q) failed", seq)
		}
		var c2 Container
		if !c2.Set(rc) {
			t.Fatalf("Set(%q) (reverse complement of %q) failed", rc, seq)
		}
		forwardOnComplement := c2.FindAll(FindOpts{ForwardFrames: AllFrames, MaxGaps: 10})

		if len(reverseOnly) != len(forwardOnComplement) {
			t.Fatalf("seq %q: reverse-strand scan found %d locations, forward scan of its complement found %d: %+v vs %+v",
				seq, len(reverseOnly), len(forwardOnComplement), reverseOnly, forwardOnComplement)
		}
		for i := range reverseOnly {
			got := reverseOnly[i]
			got.Strand = Plus
			if got != forwardOnComplement[i] {
				t.Errorf("seq %q: location %d: reverse-strand scan gave %+v, forward scan of complement gave %+v",
					seq, i, reverseOnly[i], forwardOnComplement[i])
			}
		}
	}
}

func assertLocations(t *testing.T, got, want []SequenceLocation) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d locations %+v, want %d %+v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("location %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
