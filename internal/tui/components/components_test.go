package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/stacks/internal/domain"
)

func books(ids ...string) []domain.Ebook {
	out := make([]domain.Ebook, len(ids))
	for i, id := range ids {
		out[i] = domain.Ebook{ID: id, Title: "Title " + id, Author: "Author"}
	}
	return out
}

func TestList_CursorFollowsSelection(t *testing.T) {
	l := NewList[domain.Ebook]("Ebooks", "none")
	l.SetSize(40, 12)
	l.SetItems(books("a", "b", "c"))

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	sel, ok := l.Selected()
	assert.True(t, ok)
	assert.Equal(t, "c", sel.ID, "cursor stops at the last row")

	l.SetItems(books("c", "a"))
	sel, _ = l.Selected()
	assert.Equal(t, "c", sel.ID, "selection survives reordering")

	l.SetItems(books("x"))
	sel, _ = l.Selected()
	assert.Equal(t, "x", sel.ID)

	l.MoveUp()
	assert.Equal(t, 0, l.Cursor())

	l.SetItems(nil)
	_, ok = l.Selected()
	assert.False(t, ok)
	assert.Contains(t, l.View(), "none")
}

func TestList_Loading(t *testing.T) {
	l := NewList[domain.Ebook]("Ebooks", "none")
	l.SetSize(40, 12)
	l.SetLoading(true)
	assert.Contains(t, l.View(), "Loading...")

	l.SetItems(books("a"))
	assert.Contains(t, l.View(), "Title a")
}

func TestLoginForm(t *testing.T) {
	f := NewLoginForm()
	f.Focus()
	assert.True(t, f.Focused())

	f, _, submitted := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("emma@demo.com")})
	assert.False(t, submitted)
	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submitted, "enter on the email field moves to the password")
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("secret")})
	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)

	email, password := f.Values()
	assert.Equal(t, "emma@demo.com", email)
	assert.Equal(t, "secret", password)
	assert.NotContains(t, f.View(), "secret")

	f.SetError("Invalid credentials. Try a demo user.")
	assert.Contains(t, f.View(), "Invalid credentials")

	f.Reset()
	email, password = f.Values()
	assert.Empty(t, email+password)
	assert.Empty(t, f.Error())

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.Focused())
}

func TestInspector(t *testing.T) {
	i := NewInspector()
	i.SetSize(50, 30)
	assert.Contains(t, i.View(), "No book selected")

	i.SetItem(domain.Work{
		Title:            "Walden",
		Authors:          []string{"Henry David Thoreau"},
		FirstPublishYear: 1854,
		EditionCount:     40,
		Readable:         true,
	})
	view := i.View()
	assert.Contains(t, view, "Walden")
	assert.Contains(t, view, "1854")
	assert.Contains(t, view, "Readable online")

	i.SetItem(domain.BorrowedBook{ID: "bk-1", Title: "Frankenstein", Due: "2026-02-20"})
	assert.Contains(t, i.View(), "2026-02-20")
}
