package trivia

import "strings"

// FilterByText returns the questions whose text contains term as a
// case-insensitive substring, preserving input order. Matching is plain
// substring containment; there is no tokenization or ranking.
func FilterByText(term string, questions []Question) []Question {
	needle := strings.ToLower(term)

	var matches []Question
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Text), needle) {
			matches = append(matches, q)
		}
	}
	return matches
}
