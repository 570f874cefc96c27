package orf

import "github.com/grailbio/seqorf/iupac"

// frameState is the per-frame automaton: one instance tracks one of the
// three possible codon-alignments of a strand buffer.
type frameState struct {
	insideOrf   bool
	hasStart    bool
	from        int
	gapCount    int
	lengthCount int
}

// byteAt returns buf[i], or the NUL sentinel if i is outside buf. This is
// the explicit-bound-check substitute for a NUL-terminated buffer: any
// peek past the real data reads as "incomplete" without risking a slice
// out-of-range panic.
func byteAt(buf []byte, i int) byte {
	if i < 0 || i >= len(buf) {
		return 0
	}
	return buf[i]
}

func codonAt(buf []byte, p int) [3]byte {
	return [3]byte{byteAt(buf, p), byteAt(buf, p+1), byteAt(buf, p+2)}
}

// scan walks buf once, dispatching each position to its own frame's
// automaton, and appends discovered locations to result.
//
// An open reading frame can begin at any of the three codon start
// positions:
//
//	Frame 0: AGA ATT GCC TGA ATA AAA GGA TTA CCT TGA TAG GGT AAA
//	Frame 1: A GAA TTG CCT GAA TAA AAG GAT TAC CTT GAT AGG GTA AA
//	Frame 2: AG AAT TGC CTG AAT AAA AGG ATT ACC TTG ATA GGG TAA A
//
// Each frame's state is seeded with insideOrf = true: this lets the
// scanner emit a prefix ORF running from the buffer start to the first
// stop codon in that frame, marked hasIncompleteStart unless the frame's
// first codon is itself a start codon.
func scan(
	buf []byte,
	length int,
	mask int,
	extend int,
	minLength, maxLength, maxGaps int,
	stopCodons [][3]byte,
	strand Strand,
	result []SequenceLocation,
) []SequenceLocation {
	if length < 3 {
		return result
	}

	const frames = 3
	frameBit := [frames]int{Frame1, Frame2, Frame3}

	var states [frames]frameState
	for f := 0; f < frames; f++ {
		first := codonAt(buf, f)
		states[f] = frameState{insideOrf: true, hasStart: iupac.IsStart(first[:]), from: f}
	}

	// We walk the buffer only once: every position in [0, length-3] is
	// visited in increasing order and dispatched to its own frame's
	// automaton; positions beyond that cannot form a complete codon and
	// do not open or close ORFs.
	for position := 0; position <= length-3; position++ {
		f := position % frames
		if mask&frameBit[f] == 0 {
			continue
		}
		st := &states[f]

		codon := codonAt(buf, position)
		thisIncomplete := iupac.IsIncomplete(codon[:])
		nextCodon := codonAt(buf, position+3)
		isLast := !thisIncomplete && iupac.IsIncomplete(nextCodon[:])

		var shouldStart bool
		if extend&ExtendStart != 0 {
			// Prefer the earliest possible start within a
			// stop-bounded region.
			shouldStart = !st.insideOrf && iupac.IsStart(codon[:])
		} else {
			// Default: every position following a stop codon
			// re-opens an ORF, start codon or not, for maximal
			// coverage.
			shouldStart = !st.insideOrf
		}

		// Never start a new ORF on the last codon of the frame.
		if shouldStart && !isLast {
			st.insideOrf = true
			st.hasStart = iupac.IsStart(codon[:])
			st.from = position
			st.gapCount = 0
			st.lengthCount = 0
		}

		if st.insideOrf {
			st.lengthCount++
			if iupac.IsGapOrN(codon[:]) {
				st.gapCount++
			}
		}

		stop := iupac.IsStop(codon[:], stopCodons)
		if st.insideOrf && (stop || isLast) {
			// Under ExtendEnd, bail on a short ORF instead of
			// closing, so a later stop can be found.
			if extend&ExtendEnd != 0 && stop && st.lengthCount <= minLength {
				continue
			}

			st.insideOrf = false

			// Closure at the last codon always includes its 3 bytes,
			// even when that codon is also a stop.
			to := position
			if isLast {
				to += 3
			}

			if to == st.from {
				// Degenerate: the ORF's first codon is itself a
				// stop.
				continue
			}

			// maxLength == 0 means unbounded: the zero FindOpts should
			// impose no ceiling, matching min_length = 0, max_length = ∞
			// as the no-filter defaults.
			if st.gapCount > maxGaps || (maxLength > 0 && st.lengthCount > maxLength) || st.lengthCount <= minLength {
				continue
			}

			result = append(result, SequenceLocation{
				From:               st.from,
				To:                 to,
				Strand:             strand,
				HasIncompleteStart: !st.hasStart,
				HasIncompleteEnd:   !stop,
			})
		}
	}
	return result
}
