// Package iupac implements pure, allocation-free lookups over the extended
// IUPAC nucleotide alphabet: complementation, and recognition of start,
// stop, gap/ambiguous, and out-of-buffer ("incomplete") codons.
//
// Every byte the rest of this repository stores is expected to be one of
// {A,C,G,T,U,R,Y,S,W,K,M,B,D,H,V,N}, uppercase. Bytes outside that set
// complement to the sentinel '.'.
package iupac

// complementTable maps each byte to its Watson-Crick (or IUPAC ambiguity)
// complement. U (RNA) complements to A, so reverse-complementing an RNA
// base yields DNA. Bytes outside the IUPAC set map to '.'; lowercase
// inputs map to lowercase outputs.
var complementTable = buildComplementTable()

func buildComplementTable() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = '.'
	}
	pairs := []struct{ a, b byte }{
		{'A', 'T'},
		{'C', 'G'},
		{'R', 'Y'},
		{'S', 'S'},
		{'W', 'W'},
		{'K', 'M'},
		{'B', 'V'},
		{'D', 'H'},
		{'N', 'N'},
	}
	for _, p := range pairs {
		t[p.a] = p.b
		t[p.b] = p.a
		t[p.a+32] = p.b + 32 // lowercase
		t[p.b+32] = p.a + 32
	}
	t['U'] = 'A'
	t['u'] = 'a'
	return t
}

// Complement returns the IUPAC complement of b, or '.' if b is not a
// recognized IUPAC byte.
func Complement(b byte) byte {
	return complementTable[b]
}

// DefaultStopCodons is the standard genetic code's stop-codon set.
var DefaultStopCodons = [3][3]byte{
	{'T', 'A', 'A'},
	{'T', 'A', 'G'},
	{'T', 'G', 'A'},
}

// IsStart reports whether codon is ATG or AUG. The core only ever passes
// already-uppercased bytes, but the check itself is case-sensitive by
// design: callers are responsible for uppercasing first.
func IsStart(codon []byte) bool {
	if len(codon) != 3 {
		return false
	}
	return codon[0] == 'A' && codon[2] == 'G' && (codon[1] == 'T' || codon[1] == 'U')
}

// IsStop reports whether codon, with any U folded to T position-wise,
// matches one of stopCodons. Pass iupac.DefaultStopCodons for the
// standard genetic code.
func IsStop(codon []byte, stopCodons [][3]byte) bool {
	if len(codon) != 3 {
		return false
	}
	var n [3]byte
	for i, c := range codon[:3] {
		if c == 'U' {
			c = 'T'
		}
		n[i] = c
	}
	for _, stop := range stopCodons {
		if n == stop {
			return true
		}
	}
	return false
}

// IsGapOrN reports whether any base in codon is 'N' or complements to '.'
// (i.e. falls outside the recognized IUPAC alphabet).
func IsGapOrN(codon []byte) bool {
	for _, c := range codon[:3] {
		if c == 'N' || Complement(c) == '.' {
			return true
		}
	}
	return false
}

// IsIncomplete reports whether any base in codon is the NUL sentinel used
// to mark positions past the end of a sequence buffer.
func IsIncomplete(codon []byte) bool {
	for _, c := range codon[:3] {
		if c == 0 {
			return true
		}
	}
	return false
}
