package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/stacks/internal/domain"
)

var testWorks = []domain.Work{
	{Key: "w1", Title: "Pride and Prejudice", Authors: []string{"Jane Austen"}, CoverID: 1, EditionCount: 3000, FirstPublishYear: 1813, Readable: true, Subjects: []string{"Fiction", "Romance", "England", "Sisters", "Marriage"}},
	{Key: "w2", Title: "Les Misérables", Authors: []string{"Victor Hugo"}, EditionCount: 900, FirstPublishYear: 1862, Subjects: []string{"Fiction", "France"}},
	{Key: "w3", Title: "A Very Long Modern Title Here", EditionCount: 3, FirstPublishYear: 2001, Subjects: []string{"Essays", "Romance"}},
	{Key: "w4", Title: "Undated", Authors: []string{"Anon"}, CoverID: 7, EditionCount: 25, Readable: true, Subjects: []string{"Fiction"}},
}

func keys(works []domain.Work) []string {
	out := make([]string, len(works))
	for i, w := range works {
		out[i] = w.Key
	}
	return out
}

func TestApply_Filters(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"none", Criteria{}, []string{"w1", "w2", "w3", "w4"}},
		{"title query", Criteria{Query: " pride "}, []string{"w1"}},
		{"author query", Criteria{Query: "HUGO"}, []string{"w2"}},
		{"diacritics", Criteria{Query: "miserables"}, []string{"w2"}},
		{"subject", Criteria{Subject: "Romance"}, []string{"w1", "w3"}},
		{"all subjects", Criteria{Subject: AllSubjects}, []string{"w1", "w2", "w3", "w4"}},
		{"with cover", Criteria{WithCover: true}, []string{"w1", "w4"}},
		{"with author", Criteria{WithAuthor: true}, []string{"w1", "w2", "w4"}},
		{"readable", Criteria{Readable: true}, []string{"w1", "w4"}},
		{"classic skips missing year", Criteria{Classic: true}, []string{"w1", "w2"}},
		{"popular", Criteria{Popular: true}, []string{"w1", "w2", "w4"}},
		{"short title", Criteria{ShortTitle: true}, []string{"w1", "w2", "w4"}},
		{"combined", Criteria{Classic: true, Readable: true}, []string{"w1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(Apply(testWorks, tt.c)))
		})
	}
}

func TestApply_Sort(t *testing.T) {
	assert.Equal(t, []string{"w1", "w2", "w3", "w4"}, keys(Apply(testWorks, Criteria{Sort: SortRelevant})))
	assert.Equal(t, []string{"w1", "w2", "w4", "w3"}, keys(Apply(testWorks, Criteria{Sort: SortPopular})))
	assert.Equal(t, []string{"w3", "w2", "w1", "w4"}, keys(Apply(testWorks, Criteria{Sort: SortTitle})))
	assert.Equal(t, []string{"w3", "w2", "w1", "w4"}, keys(Apply(testWorks, Criteria{Sort: SortYear})))

	// Input is untouched
	assert.Equal(t, "w1", testWorks[0].Key)
}

func TestSortOrder(t *testing.T) {
	assert.Equal(t, SortPopular, SortRelevant.Next())
	assert.Equal(t, SortRelevant, SortYear.Next())
	assert.Equal(t, SortTitle, ParseSortOrder(" Title "))
	assert.Equal(t, SortRelevant, ParseSortOrder("random"))
	assert.Equal(t, "Newest first", SortYear.Label())
}

func TestCriteria_Active(t *testing.T) {
	assert.False(t, Criteria{Sort: SortTitle, Subject: AllSubjects}.Active())
	assert.True(t, Criteria{Query: "x"}.Active())
	assert.True(t, Criteria{Popular: true}.Active())
}

func TestSubjectChips(t *testing.T) {
	chips := SubjectChips(testWorks)
	// "Marriage" is the fifth subject of w1 and is not counted
	assert.Equal(t, []string{AllSubjects, "Fiction", "Romance", "England", "Sisters", "France", "Essays"}, chips)

	assert.Equal(t, []string{AllSubjects}, SubjectChips(nil))
}

func TestSubjectChips_TopEight(t *testing.T) {
	var works []domain.Work
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		works = append(works, domain.Work{Subjects: []string{s}})
	}
	works = append(works, domain.Work{Subjects: []string{"j"}})

	chips := SubjectChips(works)
	assert.Len(t, chips, 9)
	assert.Equal(t, "j", chips[1])
}

func TestFold(t *testing.T) {
	assert.Equal(t, "les miserables", Fold("Les Misérables"))
	assert.Equal(t, "bronte", Fold("Brontë"))
}

func TestFuzzy(t *testing.T) {
	titles := []string{"Moby-Dick", "Dracula", "Pride and Prejudice"}

	matches := Fuzzy("drc", titles)
	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, []int{0, 1, 3}, matches[0].MatchedIndexes)

	assert.Nil(t, Fuzzy("  ", titles))
	assert.Empty(t, Fuzzy("zzz", titles))
}

func TestFuzzyItems(t *testing.T) {
	ebooks := []domain.Ebook{
		{ID: "eb-1", Title: "Pride and Prejudice"},
		{ID: "eb-2", Title: "Moby-Dick"},
	}
	got, matches := FuzzyItems("moby", ebooks)
	require.Len(t, got, 1)
	assert.Equal(t, "eb-2", got[0].ID)
	assert.Len(t, matches, 1)
}

func TestRank(t *testing.T) {
	titles := []string{"The Dracula Tape", "Dracula", "Dr. Jekyll and Mr. Hyde", "Emma"}

	ranked := Rank("dracula", titles)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Index, "exact match first")
	assert.Equal(t, 0, ranked[1].Index)

	assert.Nil(t, Rank("", titles))
}

func TestRankWorks(t *testing.T) {
	got := RankWorks("austen", testWorks)
	assert.Equal(t, []string{"w1"}, keys(got))
}

func TestCompile(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"year < 1900", []string{"w1", "w2", "w4"}},
		{"year > 0 && year < 1900 && readable", []string{"w1"}},
		{`"Romance" in subjects`, []string{"w1", "w3"}},
		{"editions >= 25 && has_cover", []string{"w1", "w4"}},
		{`title startsWith "Les"`, []string{"w2"}},
		{`len(authors) == 0`, []string{"w3"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := p.Select(testWorks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("")
	assert.Error(t, err)

	_, err = Compile("year +")
	assert.Error(t, err)

	_, err = Compile("title")
	assert.Error(t, err, "non-boolean expressions are rejected")

	_, err = Compile("pages > 10")
	assert.Error(t, err, "unknown fields are rejected")
}
