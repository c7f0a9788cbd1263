package state

import "github.com/mmcdole/stacks/internal/domain"

// SeedBorrowedBooks returns the loans a fresh store starts with
func SeedBorrowedBooks() []domain.BorrowedBook {
	return []domain.BorrowedBook{
		{ID: "bk-1", Title: "The Picture of Dorian Gray", Author: "Oscar Wilde", Due: "2026-02-12"},
		{ID: "bk-2", Title: "Frankenstein", Author: "Mary Shelley", Due: "2026-02-20"},
		{ID: "bk-3", Title: "The Time Machine", Author: "H. G. Wells", Due: "2026-02-28"},
	}
}

// SeedCatalog returns the ebooks a fresh store offers for purchase
func SeedCatalog() []domain.Ebook {
	return []domain.Ebook{
		{ID: "eb-1", Title: "Pride and Prejudice", Author: "Jane Austen", Format: domain.FormatEPUB},
		{ID: "eb-2", Title: "Moby-Dick", Author: "Herman Melville", Format: domain.FormatPDF},
		{ID: "eb-3", Title: "Dracula", Author: "Bram Stoker", Format: domain.FormatEPUB},
	}
}
