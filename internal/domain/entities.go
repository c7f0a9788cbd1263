package domain

import (
	"fmt"
	"strings"
)

// Session is the logged-in status and display name of the current user
type Session struct {
	IsLoggedIn      bool
	CurrentUserName string
}

// DefaultSession returns the logged-out session
func DefaultSession() Session {
	return Session{}
}

// BorrowedBook is a library loan with a due date
type BorrowedBook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Due    string `json:"due"` // YYYY-MM-DD
}

// GetID returns the loan's book ID
func (b BorrowedBook) GetID() string { return b.ID }

// GetTitle returns the display title
func (b BorrowedBook) GetTitle() string { return b.Title }

// GetDescription returns the author and due date for list display
func (b BorrowedBook) GetDescription() string {
	if b.Due == "" {
		return b.Author
	}
	return fmt.Sprintf("%s · due %s", b.Author, b.Due)
}

// Format is an ebook file format
type Format string

const (
	FormatEPUB Format = "EPUB"
	FormatPDF  Format = "PDF"
	FormatMOBI Format = "MOBI"
)

// Known reports whether the format is one of the supported formats
func (f Format) Known() bool {
	switch f {
	case FormatEPUB, FormatPDF, FormatMOBI:
		return true
	}
	return false
}

// ParseFormat normalizes a format string. Unknown formats are kept verbatim.
func ParseFormat(s string) Format {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	if f.Known() {
		return f
	}
	return Format(strings.TrimSpace(s))
}

// Ebook is an ebook offered in the catalog or already purchased
type Ebook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Format Format `json:"format"`
}

// GetID returns the ebook ID
func (e Ebook) GetID() string { return e.ID }

// GetTitle returns the display title
func (e Ebook) GetTitle() string { return e.Title }

// GetDescription returns the author and format for list display
func (e Ebook) GetDescription() string {
	if e.Format == "" {
		return e.Author
	}
	return fmt.Sprintf("%s · %s", e.Author, e.Format)
}

// UnknownAuthor is shown for works without author details
const UnknownAuthor = "Unknown author"

// Work is a record fetched from the book-metadata service. Works are never
// persisted; they are mapped to BorrowedBook or Ebook when acted upon.
type Work struct {
	Key              string   // e.g. "/works/OL45804W"
	Title            string
	CoverID          int      // 0 when the work has no cover
	CoverURL         string   // empty when CoverID is 0
	Authors          []string // author display names
	Subjects         []string
	EditionCount     int
	FirstPublishYear int // 0 when unknown
	Readable         bool
}

// GetID returns the work key
func (w Work) GetID() string { return w.Key }

// GetTitle returns the display title
func (w Work) GetTitle() string { return w.Title }

// GetDescription returns authors and first publish year
func (w Work) GetDescription() string {
	if w.FirstPublishYear > 0 {
		return fmt.Sprintf("%s · %d", w.AuthorLine(), w.FirstPublishYear)
	}
	return w.AuthorLine()
}

// AuthorLine joins author names, falling back to UnknownAuthor
func (w Work) AuthorLine() string {
	if len(w.Authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(w.Authors, ", ")
}

// HasCover reports whether the work has a cover image
func (w Work) HasCover() bool {
	return w.CoverID > 0
}
