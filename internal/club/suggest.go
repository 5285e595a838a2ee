package club

import (
	"sort"
	"strings"
	"unicode"
)

// suggestionThreshold is the minimum similarity for a roster name to be offered.
const suggestionThreshold = 0.5

const maxSuggestions = 3

// Suggestion is a roster name that resembles an unknown player name.
type Suggestion struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// SuggestPlayers ranks roster names by how closely they resemble query, best
// first. Used to answer "did you mean" when an opponent is not on the roster.
func SuggestPlayers(query string, roster []string) []Suggestion {
	q := normalizeName(query)
	if q == "" {
		return nil
	}

	var suggestions []Suggestion
	for _, name := range roster {
		n := normalizeName(name)
		score := (stringSimilarity(q, n) + tokenSimilarity(q, n)) / 2
		if score >= suggestionThreshold {
			suggestions = append(suggestions, Suggestion{Name: name, Confidence: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// normalizeName lower-cases a name and strips everything but letters, digits and single spaces.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}
	r1, r2 := []rune(s1), []rune(s2)
	return 1.0 - float64(levenshteinDistance(r1, r2))/float64(max(len(r1), len(r2)))
}

// tokenSimilarity is the share of words that have a close counterpart in the other name.
func tokenSimilarity(s1, s2 string) float64 {
	tokens1 := strings.Fields(s1)
	tokens2 := strings.Fields(s2)
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	var matchCount int
	for _, t1 := range tokens1 {
		for _, t2 := range tokens2 {
			if stringSimilarity(t1, t2) > 0.8 {
				matchCount++
				break
			}
		}
	}
	return float64(matchCount) / float64(max(len(tokens1), len(tokens2)))
}

func levenshteinDistance(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
