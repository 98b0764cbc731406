package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the maximum edit distance considered a match
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps how many suggestions are returned
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching behavior
type FuzzyMatchOptions struct {
	MaxDistance    int
	MaxSuggestions int
}

type suggestion struct {
	value    string
	distance int
}

// FindSimilar finds candidates similar to the target using Levenshtein
// distance, closest first. Matching is case-insensitive.
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	if opts == nil {
		opts = &FuzzyMatchOptions{}
	}
	maxDist := opts.MaxDistance
	if maxDist == 0 {
		maxDist = DefaultMaxDistance
	}
	maxN := opts.MaxSuggestions
	if maxN == 0 {
		maxN = DefaultMaxSuggestions
	}

	var suggestions []suggestion
	for _, candidate := range candidates {
		dist := levenshtein(strings.ToLower(target), strings.ToLower(candidate))
		if dist <= maxDist {
			suggestions = append(suggestions, suggestion{value: candidate, distance: dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].distance < suggestions[j].distance
	})

	result := make([]string, 0, maxN)
	for i := 0; i < len(suggestions) && i < maxN; i++ {
		result = append(result, suggestions[i].value)
	}
	return result
}

// levenshtein is the minimum number of single-character edits required to
// change s1 into s2.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

func minOf(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
