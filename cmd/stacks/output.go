package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printTable renders rows under headers, or empty when there are no rows
func printTable(w io.Writer, empty string, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, empty)
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func printBorrowed(w io.Writer, books []domain.BorrowedBook) {
	rows := make([][]string, len(books))
	for i, b := range books {
		rows[i] = []string{b.ID, b.Title, b.Author, b.Due}
	}
	printTable(w, "No borrowed books.", []string{"ID", "TITLE", "AUTHOR", "DUE"}, rows)
}

func printEbooks(w io.Writer, empty string, ebooks []domain.Ebook) {
	rows := make([][]string, len(ebooks))
	for i, e := range ebooks {
		rows[i] = []string{e.ID, e.Title, e.Author, string(e.Format)}
	}
	printTable(w, empty, []string{"ID", "TITLE", "AUTHOR", "FORMAT"}, rows)
}

func printWorks(w io.Writer, works []domain.Work) {
	rows := make([][]string, len(works))
	for i, wk := range works {
		year := ""
		if wk.FirstPublishYear > 0 {
			year = strconv.Itoa(wk.FirstPublishYear)
		}
		rows[i] = []string{wk.Key, styles.Truncate(wk.Title, 48), styles.Truncate(wk.AuthorLine(), 32), year, strconv.Itoa(wk.EditionCount)}
	}
	printTable(w, "No books found.", []string{"KEY", "TITLE", "AUTHORS", "YEAR", "EDITIONS"}, rows)
}
