package domain

import "context"

// ListItem is the common display interface for everything rendered in a list.
// BorrowedBook, Ebook and Work implement it.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display
	GetDescription() string
}

// CatalogRepository reads works from the book-metadata service
type CatalogRepository interface {
	// FetchSubject reads works filed under subject
	FetchSubject(ctx context.Context, subject string, limit int) ([]Work, error)

	// FetchURL reads works from a complete subject endpoint URL.
	// limit overrides any limit already present in the URL when > 0.
	FetchURL(ctx context.Context, rawURL string, limit int) ([]Work, error)
}
