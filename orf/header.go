package orf

import (
	"fmt"
	"strings"
)

// EncodeHeaderToken serializes loc as the bracketed token used to
// interoperate with external sequence headers:
//
//	[Orf: <id>, <from>, <to>, <strand>, <incomplete_start>, <incomplete_end>]
func EncodeHeaderToken(loc SequenceLocation) string {
	return fmt.Sprintf("[Orf: %d, %d, %d, %d, %d, %d]",
		loc.ID, loc.From, loc.To, loc.Strand, b2i(loc.HasIncompleteStart), b2i(loc.HasIncompleteEnd))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ParseHeaderToken finds the first whitespace-delimited word in line whose
// first five bytes are "[Orf:" and parses it into a SequenceLocation.
// A missing token, or one with fewer than five recovered numeric fields,
// is a hard error: malformed headers are a caller/data error, not an
// input-validation concern this package papers over.
func ParseHeaderToken(line string) (SequenceLocation, error) {
	var token string
	found := false
	for _, word := range strings.Fields(line) {
		if len(word) >= 5 && word[:5] == "[Orf:" {
			token = word
			found = true
			break
		}
	}
	if !found {
		return SequenceLocation{}, fmt.Errorf("orf: no [Orf: ...] token found in header %q", line)
	}

	// The token may run together with trailing words if callers pass a
	// pre-split field; strings.Fields already isolates whitespace-bounded
	// words, so token here is exactly one field. Fields inside the token
	// are comma-separated, e.g. "[Orf:" "12," "34," "56]" would appear as
	// separate Fields()-words; reassemble by scanning the whole line
	// instead, bounded by the matching ']'.
	full, err := extractBracketed(line, token)
	if err != nil {
		return SequenceLocation{}, err
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(full, "[Orf:"), "]")
	parts := strings.Split(inner, ",")
	nums := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var v int64
		if _, err := fmt.Sscanf(p, "%d", &v); err != nil {
			break
		}
		nums = append(nums, v)
	}
	if len(nums) < 5 {
		return SequenceLocation{}, fmt.Errorf("orf: could not parse Orf token %q", full)
	}

	loc := SequenceLocation{
		ID:     uint32(nums[0]),
		From:   int(nums[1]),
		To:     int(nums[2]),
		Strand: Strand(nums[3]),
	}
	if len(nums) > 4 {
		loc.HasIncompleteStart = nums[4] != 0
	}
	if len(nums) > 5 {
		loc.HasIncompleteEnd = nums[5] != 0
	}
	return loc, nil
}

// extractBracketed finds the bracketed run starting at the word beginning
// with "[Orf:" and returns the full "[Orf: ..., ...]" substring, handling
// the fact that strings.Fields() has already split it on internal spaces.
func extractBracketed(line, firstWord string) (string, error) {
	start := strings.Index(line, firstWord)
	if start < 0 {
		return "", fmt.Errorf("orf: no [Orf: ...] token found in header %q", line)
	}
	end := strings.IndexByte(line[start:], ']')
	if end < 0 {
		return "", fmt.Errorf("orf: unterminated Orf token in header %q", line)
	}
	return line[start : start+end+1], nil
}
