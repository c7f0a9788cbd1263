package state

import (
	"github.com/mmcdole/stacks/internal/domain"
)

func indexByID[T domain.ListItem](items []T, id string) int {
	for i, item := range items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

// removeByID returns a copy of items without id
func removeByID[T domain.ListItem](items []T, id string) ([]T, bool) {
	i := indexByID(items, id)
	if i < 0 {
		return items, false
	}
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	next = append(next, items[i+1:]...)
	return next, true
}

// uniqueByID drops later duplicates, keeping insertion order
func uniqueByID[T domain.ListItem](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.GetID()]; ok {
			continue
		}
		seen[item.GetID()] = struct{}{}
		out = append(out, item)
	}
	return out
}

func visibleCatalog(catalog, purchased []domain.Ebook) []domain.Ebook {
	owned := make(map[string]struct{}, len(purchased))
	for _, e := range purchased {
		owned[e.ID] = struct{}{}
	}
	visible := make([]domain.Ebook, 0, len(catalog))
	for _, e := range catalog {
		if _, ok := owned[e.ID]; !ok {
			visible = append(visible, e)
		}
	}
	return visible
}

// BorrowedFromWork maps a fetched work to a loan due on due
func BorrowedFromWork(w domain.Work, due string) domain.BorrowedBook {
	return domain.BorrowedBook{
		ID:     w.Key,
		Title:  w.Title,
		Author: w.AuthorLine(),
		Due:    due,
	}
}

// EbookFromWork maps a fetched work to an EPUB ebook
func EbookFromWork(w domain.Work) domain.Ebook {
	return domain.Ebook{
		ID:     w.Key,
		Title:  w.Title,
		Author: w.AuthorLine(),
		Format: domain.FormatEPUB,
	}
}
