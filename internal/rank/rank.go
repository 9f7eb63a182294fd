/*
Package rank orders tickers by their aggregate sentiment.
*/
package rank

import "sort"

// Entry pairs a ticker with its aggregate score.
type Entry struct {
	Ticker string
	Score  float64
}

// Rank returns a copy of scores sorted by score, highest first. Entries with
// equal scores keep their input order.
func Rank(scores []Entry) []Entry {
	ranked := make([]Entry, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Top returns the first n entries of a ranking. n <= 0 keeps them all.
func Top(ranked []Entry, n int) []Entry {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
