// Package orf locates open reading frames in nucleotide sequences: a
// forward strand and its reverse complement are each scanned in up to
// three frames by a single-pass, per-frame state machine.
package orf

import (
	"github.com/grailbio/seqorf/iupac"
)

// Strand identifies which of the two complementary strands a
// SequenceLocation was discovered on.
type Strand int

const (
	// Plus is the forward strand, as given to Container.Set.
	Plus Strand = 1
	// Minus is the reverse complement of the forward strand.
	Minus Strand = 2
)

func (s Strand) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		return "?"
	}
}

// Frame mask bits, combined with bitwise OR to select which of the three
// reading frames of a strand to scan. A zero mask disables that strand.
const (
	Frame1 = 1 << iota
	Frame2
	Frame3
)

// AllFrames scans all three frames of a strand.
const AllFrames = Frame1 | Frame2 | Frame3

// Extend mode bits, combinable with bitwise OR.
const (
	// ExtendStart restricts opening a new ORF to positions holding an
	// actual start codon, so the scanner reports the earliest possible
	// start within a stop-bounded region instead of the maximal one.
	ExtendStart = 1 << iota
	// ExtendEnd skips a stop codon that would close an ORF of at most
	// minLength codons, continuing to seek a later stop instead.
	ExtendEnd
)

// SequenceLocation is one discovered open reading frame.
type SequenceLocation struct {
	// ID is an opaque identifier assigned by the caller; Container never
	// sets it.
	ID uint32
	// From is the inclusive start offset within the strand buffer the
	// location was discovered on (not translated to forward coordinates
	// when Strand == Minus).
	From int
	// To is the exclusive end offset within the same buffer. To > From.
	To int
	// Strand is which buffer (forward or reverse complement) From/To are
	// offsets into.
	Strand Strand
	// HasIncompleteStart is true iff the ORF's first codon is not a start
	// codon, whether it begins at the sequence boundary or right after a
	// stop codon.
	HasIncompleteStart bool
	// HasIncompleteEnd is true iff the ORF was closed without observing a
	// stop codon, i.e. it ends at the sequence boundary.
	HasIncompleteEnd bool
}

// Container owns a sequence's uppercased forward buffer and its
// pre-computed reverse complement, and scans either for open reading
// frames. A Container is not safe for concurrent mutation; concurrent
// View and FindAll calls against an unchanging Container are safe.
// Callers that parallelize over many sequences should instantiate one
// Container per worker (see package runner).
type Container struct {
	forward []byte // length+1, NUL-terminated
	reverse []byte // length+1, NUL-terminated
	length  int
}

// Set replaces the Container's contents with the uppercased projection of
// seq and its reverse complement. It returns false, leaving the Container
// empty, if len(seq) < 3 or if any byte of seq lies outside the IUPAC
// alphabet recognized by iupac.Complement.
func (c *Container) Set(seq []byte) bool {
	c.forward = nil
	c.reverse = nil
	c.length = 0

	n := len(seq)
	if n < 3 {
		return false
	}

	forward := make([]byte, n+1) // extra NUL byte lets codon peeks past the end read as incomplete
	for i, b := range seq {
		forward[i] = upper(b)
	}

	reverse := make([]byte, n+1)
	for i := 0; i < n; i++ {
		comp := iupac.Complement(forward[n-1-i])
		if comp == '.' {
			return false
		}
		reverse[i] = comp
	}

	c.forward = forward
	c.reverse = reverse
	c.length = n
	return true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}

// Len returns the length of the currently loaded sequence, or 0 if none is
// loaded.
func (c *Container) Len() int {
	return c.length
}

// View returns a copy of the bytes at loc within the strand buffer it
// names. It returns an empty string if no sequence is loaded. loc.To must
// be greater than loc.From.
func (c *Container) View(loc SequenceLocation) string {
	if c.length == 0 {
		return ""
	}
	if loc.To <= loc.From {
		panic("orf: View requires loc.To > loc.From")
	}
	buf := c.forward
	if loc.Strand == Minus {
		buf = c.reverse
	}
	return string(buf[loc.From:loc.To])
}

// FindOpts bundles the tunable thresholds for FindAll.
type FindOpts struct {
	// MinLength and MaxLength bound an ORF's length in codons:
	// MinLength < length <= MaxLength. A MaxLength of 0 or less imposes no
	// upper bound.
	MinLength, MaxLength int
	// MaxGaps is the maximum number of codons containing 'N' (or any
	// non-IUPAC byte) an ORF may contain.
	MaxGaps int
	// ForwardFrames and ReverseFrames are frame masks (Frame1|Frame2|Frame3)
	// selecting which frames to scan on each strand; a zero mask disables
	// scanning of that strand entirely.
	ForwardFrames, ReverseFrames int
	// Extend is a combination of ExtendStart / ExtendEnd.
	Extend int
	// StopCodons overrides the stop-codon table; nil selects the standard
	// genetic code's stops (iupac.DefaultStopCodons).
	StopCodons [][3]byte
}

// FindAll scans the loaded sequence for open reading frames matching
// opts, scanning the forward buffer iff opts.ForwardFrames is non-empty
// and the reverse-complement buffer iff opts.ReverseFrames is non-empty,
// and concatenating results in that order.
func (c *Container) FindAll(opts FindOpts) []SequenceLocation {
	stops := opts.StopCodons
	if stops == nil {
		stops = iupac.DefaultStopCodons[:]
	}

	var result []SequenceLocation
	if opts.ForwardFrames != 0 {
		result = scan(c.forward, c.length, opts.ForwardFrames, opts.Extend,
			opts.MinLength, opts.MaxLength, opts.MaxGaps, stops, Plus, result)
	}
	if opts.ReverseFrames != 0 {
		result = scan(c.reverse, c.length, opts.ReverseFrames, opts.Extend,
			opts.MinLength, opts.MaxLength, opts.MaxGaps, stops, Minus, result)
	}
	return result
}

// reverseComplementBytes returns the reverse complement of seq, or
// (nil, false) if seq contains a byte outside the IUPAC alphabet. It is
// exposed for tests establishing the round-trip invariant between the
// forward scanner and a reverse-complemented re-scan; production code
// should go through Container.Set, which computes the same buffer as a
// side effect.
func reverseComplementBytes(seq []byte) ([]byte, bool) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		comp := iupac.Complement(upper(seq[n-1-i]))
		if comp == '.' {
			return nil, false
		}
		out[i] = comp
	}
	return out, true
}
