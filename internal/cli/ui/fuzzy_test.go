package ui

import (
	"testing"
)

func TestFindSimilar(t *testing.T) {
	candidates := []string{"User", "Post", "Comment", "Category"}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{
			name:   "close typo",
			target: "Psot",
			want:   []string{"Post"},
		},
		{
			name:   "case insensitive",
			target: "user",
			want:   []string{"User"},
		},
		{
			name:   "no match beyond distance",
			target: "Subscription",
			want:   []string{},
		},
		{
			name:   "exact match first",
			target: "Post",
			want:   []string{"Post"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilar(tt.target, candidates, nil)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if len(got) == 0 || got[0] != tt.want[0] {
				t.Errorf("FindSimilar(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestFindSimilarOrdering(t *testing.T) {
	candidates := []string{"Pots", "Post", "Posts"}
	got := FindSimilar("Post", candidates, nil)
	if len(got) == 0 || got[0] != "Post" {
		t.Errorf("expected exact match first, got %v", got)
	}
}

func TestFindSimilarMaxSuggestions(t *testing.T) {
	candidates := []string{"Post", "Posts", "Pots", "Pose", "Port"}
	got := FindSimilar("Post", candidates, &FuzzyMatchOptions{MaxSuggestions: 2})
	if len(got) != 2 {
		t.Errorf("expected 2 suggestions, got %d: %v", len(got), got)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"post", "post", 0},
		{"post", "psot", 2},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}
