package css

import "strings"

// Pair is a single literal substitution.
type Pair struct {
	Old string
	New string
}

// Substitute applies pairs to text in order, replacing every occurrence of
// Old with New. Pairs see output of the pairs before them, so chains like
// "0.92 -> 0.95", "0.95 -> 0.96" collapse both values into the last one.
// Missing Old is not an error. Returned counts hold number of replacements
// made by each pair.
func Substitute(text string, pairs []Pair) (string, []int) {
	counts := make([]int, len(pairs))
	for i, p := range pairs {
		if p.Old == "" {
			continue
		}
		if counts[i] = strings.Count(text, p.Old); counts[i] > 0 {
			text = strings.ReplaceAll(text, p.Old, p.New)
		}
	}
	return text, counts
}
