// Package textutil provides small string helpers shared by the assistant core.
package textutil

// LevenshteinDistance computes the edit distance between two strings.
// Uses the classic two-row dynamic programming table.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity returns a normalized similarity score in [0, 1]:
// (maxLen - editDistance) / maxLen. Identical strings score 1.0,
// including two empty strings.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := LevenshteinDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
