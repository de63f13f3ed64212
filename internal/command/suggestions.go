package command

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SuggestionCutoff is the minimum similarity ratio for a name to be suggested.
const SuggestionCutoff = 0.6

// MaxSuggestions caps the number of suggestions returned.
const MaxSuggestions = 3

type scoredCandidate struct {
	score float64
	text  string
}

// closeMatches returns up to n candidates whose sequence-similarity ratio to word is at least
// cutoff, best first. Equal scores are ordered by candidate, descending, so results are stable
// regardless of the order of the pool.
func closeMatches(word string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	matcher := difflib.NewMatcher(nil, nil)
	matcher.SetSeq2(splitRunes(word))

	var scored []scoredCandidate
	for _, c := range candidates {
		matcher.SetSeq1(splitRunes(c))
		// The cheaper upper bounds rule most candidates out before the full ratio.
		if matcher.RealQuickRatio() >= cutoff &&
			matcher.QuickRatio() >= cutoff &&
			matcher.Ratio() >= cutoff {
			scored = append(scored, scoredCandidate{score: matcher.Ratio(), text: c})
		}
	}

	slices.SortFunc(scored, func(a, b scoredCandidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return strings.Compare(b.text, a.text)
	})

	out := make([]string, 0, min(n, len(scored)))
	for _, s := range scored[:min(n, len(scored))] {
		out = append(out, s.text)
	}
	return out
}

// splitRunes turns a string into one element per character for the sequence matcher.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
