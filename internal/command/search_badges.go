package command

import (
	"context"
	"strings"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

// SuggestionMaxMatches is the match count below which suggestions are offered.
const SuggestionMaxMatches = 3

// SuggestionMinRosterSize is the roster size a roster must exceed for suggestions to be offered.
const SuggestionMinRosterSize = 10

// SearchStage records which strategy produced a search result.
type SearchStage string

const (
	SearchStageAll         SearchStage = "all"
	SearchStageSubstring   SearchStage = "substring"
	SearchStagePermutation SearchStage = "permutation"
)

type SearchBadgesRequest struct {
	Query string
}

type SearchBadgesResponse struct {
	Matches     []domain.Badge
	Suggestions []string
	Stage       SearchStage
}

// SearchBadges resolves a typed query against the current roster.
type SearchBadges struct {
	Roster datasources.RosterGetter
}

func NewSearchBadges(roster datasources.RosterGetter) *SearchBadges {
	return &SearchBadges{Roster: roster}
}

// Execute searches the current roster snapshot. An unloaded roster behaves as an empty one.
func (c *SearchBadges) Execute(_ context.Context, req SearchBadgesRequest) (SearchBadgesResponse, error) {
	return SearchRoster(c.Roster.Roster(), req.Query), nil
}

// SearchRoster matches query against roster:
//
//  1. an empty query returns every badge;
//  2. otherwise badges whose names or identifiers contain the query, case-insensitively;
//  3. if nothing matched and the query is two words, badges whose first and last names
//     contain the two words in either order;
//  4. when fewer than SuggestionMaxMatches badges matched in a roster of more than
//     SuggestionMinRosterSize, up to MaxSuggestions similar names.
//
// Matches keep roster order.
func SearchRoster(roster *domain.Roster, query string) SearchBadgesResponse {
	query = strings.ToLower(strings.TrimSpace(query))

	if query == "" {
		return SearchBadgesResponse{
			Matches: roster.Badges(),
			Stage:   SearchStageAll,
		}
	}

	res := SearchBadgesResponse{
		Matches: filterBadges(roster, func(b domain.Badge) bool {
			return matchesSubstring(b, query)
		}),
		Stage: SearchStageSubstring,
	}

	if len(res.Matches) == 0 {
		if tokens := strings.Fields(query); len(tokens) == 2 {
			res.Matches = filterBadges(roster, func(b domain.Badge) bool {
				return matchesNamePermutation(b, tokens[0], tokens[1])
			})
			res.Stage = SearchStagePermutation
		}
	}

	if len(res.Matches) < SuggestionMaxMatches && roster.Len() > SuggestionMinRosterSize {
		res.Suggestions = closeMatches(query, suggestionPool(roster), MaxSuggestions, SuggestionCutoff)
	}

	return res
}

func filterBadges(roster *domain.Roster, keep func(domain.Badge) bool) []domain.Badge {
	var out []domain.Badge
	for i := 0; i < roster.Len(); i++ {
		if b := roster.At(i); keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// containsField is false for missing values, whatever the needle.
func containsField(field, needle string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), needle)
}

func matchesSubstring(b domain.Badge, query string) bool {
	if fullName, ok := b.FullName(); ok && containsField(fullName, query) {
		return true
	}
	return containsField(b.FirstName, query) ||
		containsField(b.LastName, query) ||
		containsField(b.ExternalID, query) ||
		containsField(b.InternalNumber, query)
}

func matchesNamePermutation(b domain.Badge, t0, t1 string) bool {
	return (containsField(b.FirstName, t0) && containsField(b.LastName, t1)) ||
		(containsField(b.FirstName, t1) && containsField(b.LastName, t0))
}

// suggestionPool is the deduplicated set of lowercased first, last and full names.
func suggestionPool(roster *domain.Roster) []string {
	seen := make(map[string]struct{})
	var pool []string

	add := func(s string) {
		if s == "" {
			return
		}
		s = strings.ToLower(s)
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		pool = append(pool, s)
	}

	for i := 0; i < roster.Len(); i++ {
		b := roster.At(i)
		add(b.FirstName)
		add(b.LastName)
		if fullName, ok := b.FullName(); ok {
			add(fullName)
		}
	}

	return pool
}
