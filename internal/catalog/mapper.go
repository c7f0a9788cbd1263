package catalog

import (
	"fmt"
	"strings"

	"github.com/mmcdole/stacks/internal/domain"
)

// Cover image sizes
const (
	CoverSmall  = "S"
	CoverMedium = "M"
	CoverLarge  = "L"
)

// CoverURL returns the image URL of coverID at size, or "" without a cover
func CoverURL(coversURL string, coverID int, size string) string {
	if coverID <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/b/id/%d-%s.jpg", strings.TrimSuffix(coversURL, "/"), coverID, size)
}

// MapWorks converts subject works to domain works
func MapWorks(works []Work, coversURL string) []domain.Work {
	out := make([]domain.Work, 0, len(works))
	for _, w := range works {
		out = append(out, mapWork(w, coversURL))
	}
	return out
}

func mapWork(w Work, coversURL string) domain.Work {
	work := domain.Work{
		Key:          w.Key,
		Title:        strings.TrimSpace(w.Title),
		EditionCount: w.EditionCount,
		Subjects:     w.Subject,
	}
	if w.CoverID != nil {
		work.CoverID = *w.CoverID
		work.CoverURL = CoverURL(coversURL, work.CoverID, CoverMedium)
	}
	if w.FirstPublishYear != nil {
		work.FirstPublishYear = *w.FirstPublishYear
	}
	if w.Availability != nil {
		work.Readable = w.Availability.IsReadable
	}
	for _, a := range w.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			work.Authors = append(work.Authors, name)
		}
	}
	return work
}
