// Package lcs finds the longest common prefix of strings. It is used to
// suggest a known key for a misspelled one.
package lcs

import (
	"slices"
)

// CommonPrefix returns the longest common prefix of the strings in ss.
func CommonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}

	// The common prefix of the lexicographically smallest and largest strings
	// is the common prefix of all strings.
	lo := slices.Min(ss)
	hi := slices.Max(ss)
	for i := range []byte(lo) {
		if lo[i] != hi[i] {
			return lo[:i]
		}
	}
	return lo
}

// Closest returns the candidate sharing the longest common prefix with s.
// The prefix must cover at least half of s and be at least minLen bytes long.
// Earlier candidates win ties.
func Closest(s string, candidates []string, minLen int) (string, bool) {
	var (
		best    string
		bestLen int
	)
	for _, c := range candidates {
		if c == s {
			continue
		}
		n := len(CommonPrefix([]string{s, c}))
		if n > bestLen {
			best, bestLen = c, n
		}
	}
	if bestLen < minLen || bestLen*2 < len(s) {
		return "", false
	}
	return best, true
}
