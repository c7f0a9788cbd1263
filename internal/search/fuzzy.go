package search

import (
	"sort"
	"strings"

	lithammer "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/stacks/internal/domain"
)

// Match is a fuzzy match against one title
type Match struct {
	Index          int   // Index in source slice
	Score          int   // Higher = better
	MatchedIndexes []int // Character positions that matched (for highlighting)
}

// titleIndex implements sahilm/fuzzy.Source over pre-lowered titles
type titleIndex []string

func (t titleIndex) String(i int) string { return t[i] }
func (t titleIndex) Len() int            { return len(t) }

// Fuzzy matches query against titles, best first. An empty query matches
// nothing.
func Fuzzy(query string, titles []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	lower := make(titleIndex, len(titles))
	for i, t := range titles {
		lower[i] = strings.ToLower(t)
	}

	found := fuzzy.FindFrom(strings.ToLower(query), lower)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{Index: m.Index, Score: m.Score, MatchedIndexes: m.MatchedIndexes}
	}
	return matches
}

// FuzzyItems filters list items by title, keeping match order
func FuzzyItems[T domain.ListItem](query string, items []T) ([]T, []Match) {
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.GetTitle()
	}
	matches := Fuzzy(query, titles)
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out, matches
}

// Ranked is a ranked match from Rank
type Ranked struct {
	Index int
	Score int // Lower = better
}

// Rank orders the titles containing the characters of query in order,
// best first: exact, prefix, substring, then by edit distance.
func Rank(query string, titles []string) []Ranked {
	query = Fold(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	folded := make([]string, len(titles))
	for i, t := range titles {
		folded[i] = Fold(t)
	}

	found := lithammer.RankFind(query, folded)
	ranked := make([]Ranked, 0, len(found))
	for _, r := range found {
		ranked = append(ranked, Ranked{Index: r.OriginalIndex, Score: matchScore(folded[r.OriginalIndex], query, r.Distance)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// matchScore tiers a candidate. Lower score = better match.
func matchScore(title, query string, distance int) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	default:
		return 100 + distance
	}
}

// RankWorks ranks works by title and author line
func RankWorks(query string, works []domain.Work) []domain.Work {
	titles := make([]string, len(works))
	for i, w := range works {
		titles[i] = w.Title + " " + w.AuthorLine()
	}
	ranked := Rank(query, titles)
	out := make([]domain.Work, len(ranked))
	for i, r := range ranked {
		out[i] = works[r.Index]
	}
	return out
}
