package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/mmcdole/stacks/internal/domain"
)

// Filter thresholds
const (
	ClassicMaxYear  = 1950
	PopularMinEdits = 25
	ShortTitleWords = 4
	AllSubjects     = "all"

	unknownYear     = 3000 // missing years never count as classic
	maxSubjectChips = 8
	subjectsPerWork = 4
)

// SortOrder orders filtered works
type SortOrder string

const (
	SortRelevant SortOrder = "relevant"
	SortPopular  SortOrder = "popular"
	SortTitle    SortOrder = "title"
	SortYear     SortOrder = "year"
)

// SortOrders lists the orders in cycling order
var SortOrders = []SortOrder{SortRelevant, SortPopular, SortTitle, SortYear}

// Next returns the order after s
func (s SortOrder) Next() SortOrder {
	i := slices.Index(SortOrders, s)
	return SortOrders[(i+1)%len(SortOrders)]
}

// Label returns the display name
func (s SortOrder) Label() string {
	switch s {
	case SortPopular:
		return "Most editions"
	case SortTitle:
		return "Title A-Z"
	case SortYear:
		return "Newest first"
	default:
		return "Relevant"
	}
}

// ParseSortOrder returns the order named s, or SortRelevant
func ParseSortOrder(s string) SortOrder {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortOrders, order) {
		return order
	}
	return SortRelevant
}

// Criteria selects and orders fetched works
type Criteria struct {
	Query      string
	Subject    string // "" or AllSubjects matches every work
	WithCover  bool
	WithAuthor bool
	Readable   bool
	Classic    bool
	Popular    bool
	ShortTitle bool
	Sort       SortOrder
}

// Active reports whether any filter beyond sorting is set
func (c Criteria) Active() bool {
	return strings.TrimSpace(c.Query) != "" ||
		(c.Subject != "" && c.Subject != AllSubjects) ||
		c.WithCover || c.WithAuthor || c.Readable || c.Classic || c.Popular || c.ShortTitle
}

// Apply returns the works matching c, ordered by c.Sort. works is not
// modified.
func Apply(works []domain.Work, c Criteria) []domain.Work {
	q := Fold(strings.TrimSpace(c.Query))

	out := make([]domain.Work, 0, len(works))
	for _, w := range works {
		if c.matches(w, q) {
			out = append(out, w)
		}
	}

	switch c.Sort {
	case SortTitle:
		slices.SortStableFunc(out, func(a, b domain.Work) int {
			return cmp.Compare(Fold(a.Title), Fold(b.Title))
		})
	case SortYear:
		slices.SortStableFunc(out, func(a, b domain.Work) int {
			return cmp.Compare(b.FirstPublishYear, a.FirstPublishYear)
		})
	case SortPopular:
		slices.SortStableFunc(out, func(a, b domain.Work) int {
			return cmp.Compare(b.EditionCount, a.EditionCount)
		})
	}
	return out
}

func (c Criteria) matches(w domain.Work, foldedQuery string) bool {
	if foldedQuery != "" {
		authors := Fold(strings.Join(w.Authors, " "))
		if !strings.Contains(Fold(w.Title), foldedQuery) && !strings.Contains(authors, foldedQuery) {
			return false
		}
	}
	if c.Subject != "" && c.Subject != AllSubjects && !slices.Contains(w.Subjects, c.Subject) {
		return false
	}
	if c.WithCover && !w.HasCover() {
		return false
	}
	if c.WithAuthor && len(w.Authors) == 0 {
		return false
	}
	if c.Readable && !w.Readable {
		return false
	}
	if c.Classic && publishYear(w) > ClassicMaxYear {
		return false
	}
	if c.Popular && w.EditionCount < PopularMinEdits {
		return false
	}
	if c.ShortTitle && len(strings.Fields(w.Title)) > ShortTitleWords {
		return false
	}
	return true
}

func publishYear(w domain.Work) int {
	if w.FirstPublishYear == 0 {
		return unknownYear
	}
	return w.FirstPublishYear
}

// SubjectChips returns AllSubjects followed by the most frequent subjects,
// counting the leading subjects of each work. Ties keep first appearance.
func SubjectChips(works []domain.Work) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range works {
		subjects := w.Subjects
		if len(subjects) > subjectsPerWork {
			subjects = subjects[:subjectsPerWork]
		}
		for _, s := range subjects {
			if _, ok := counts[s]; !ok {
				order = append(order, s)
			}
			counts[s]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	if len(order) > maxSubjectChips {
		order = order[:maxSubjectChips]
	}
	return append([]string{AllSubjects}, order...)
}

// Fold lowercases s and strips diacritics
func Fold(s string) string {
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(s)
}
