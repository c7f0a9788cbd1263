package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/stacks/internal/search"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// renderHeader renders the tab bar and session badge
func (m Model) renderHeader() string {
	tabs := make([]string, 0, pageCount)
	for p := Page(0); p < pageCount; p++ {
		label := fmt.Sprintf("%d %s", p+1, p.Title())
		if p == m.Page {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	left := styles.HeroStyle.Render("stacks") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	right := styles.DimStyle.Render("not signed in")
	if s := m.snapshot.Session; s.IsLoggedIn {
		right = styles.BadgeStyle.Render(s.CurrentUserName)
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderLanding() string {
	counts := fmt.Sprintf("%d borrowed · %d ebooks", len(m.snapshot.Borrowed), len(m.snapshot.Purchased))
	greeting := "Sign in on the Account page to borrow and buy."
	if s := m.snapshot.Session; s.IsLoggedIn {
		greeting = "Welcome back, " + s.CurrentUserName + "."
	}

	hero := lipgloss.JoinVertical(lipgloss.Left,
		styles.HeroStyle.Render("Find your next great read."),
		styles.SubtitleStyle.Render("Borrow from the library shelves or buy ebooks to keep."),
		"",
		styles.BadgeStyle.Render(counts)+"  "+styles.DimStyle.Render(greeting),
		"",
	)

	return lipgloss.JoinVertical(lipgloss.Left, hero, m.trendingList.View())
}

func (m Model) renderCatalog() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderFilterBar(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.ebookList.View(),
			m.workList.View(),
			m.Inspector.View(),
		),
	)
}

// renderFilterBar shows the query, active toggles and subject chips
func (m Model) renderFilterBar() string {
	var query string
	switch {
	case m.filtering:
		query = m.filterInput.View()
	case m.criteria.Query != "":
		query = styles.AccentStyle.Render("/ ") + m.criteria.Query
	default:
		query = styles.DimStyle.Render("/ to filter")
	}

	toggles := []struct {
		on    bool
		label string
	}{
		{m.criteria.WithCover, "cover"},
		{m.criteria.WithAuthor, "author"},
		{m.criteria.Readable, "readable"},
		{m.criteria.Classic, "classic"},
		{m.criteria.Popular, "popular"},
		{m.criteria.ShortTitle, "short"},
	}
	var flags []string
	for _, t := range toggles {
		if t.on {
			flags = append(flags, styles.ActiveChipStyle.Render(t.label))
		}
	}

	chips := make([]string, 0, len(m.chips))
	for i, c := range m.chips {
		if i == m.chipIdx {
			chips = append(chips, styles.ActiveChipStyle.Render(c))
		} else {
			chips = append(chips, styles.ChipStyle.Render(c))
		}
	}

	line := query
	if len(flags) > 0 {
		line += "  " + strings.Join(flags, " ")
	}
	return line + "\n" + strings.Join(chips, " ")
}

func (m Model) renderAccount() string {
	if !m.snapshot.Session.IsLoggedIn {
		return lipgloss.Place(m.Width, m.Height-ChromeHeight,
			lipgloss.Center, lipgloss.Center,
			m.loginForm.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.borrowedList.View(),
		m.purchasedList.View(),
	)
}

func (m Model) renderAbout() string {
	about := `
stacks is a small library and bookstore for the terminal.

Borrow books from the shelves on loan, renew them when the due
date gets close, and return them when you are done. Ebooks bought
from the catalog stay on your account until you remove them.

Trending and catalog titles come from Open Library. State is saved
locally and shared by every stacks running on this machine.
`
	return styles.SubtitleStyle.Render(about)
}

// renderFooter renders the status bar
func (m Model) renderFooter() string {
	var left string
	if m.isLoading() {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading books...")
	}
	if m.StatusMsg != "" {
		if left != "" {
			left += "  "
		}
		if m.StatusIsErr {
			left += styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left += styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	right := m.renderHints() + "  " + styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHints shows the main actions of the current page
func (m Model) renderHints() string {
	var bindings []key.Binding
	switch m.Page {
	case PageLanding:
		bindings = []key.Binding{m.Keys.Borrow, m.Keys.Refresh}
	case PageCatalog:
		if m.catalogPane == PaneLeft {
			bindings = []key.Binding{m.Keys.Buy, m.Keys.Remove, m.Keys.Filter}
		} else {
			bindings = []key.Binding{m.Keys.Borrow, m.Keys.Buy, m.Keys.Sort, m.Keys.Subject}
		}
	case PageAccount:
		if !m.snapshot.Session.IsLoggedIn {
			return ""
		}
		if m.accountPane == PaneLeft {
			bindings = []key.Binding{m.Keys.Return, m.Keys.Renew, m.Keys.Logout}
		} else {
			bindings = []key.Binding{m.Keys.Remove, m.Keys.Logout}
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.AccentStyle.Render(h.Key)+styles.DimStyle.Render(" "+h.Desc))
	}
	return strings.Join(parts, "  ")
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"NAVIGATION", []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.SwitchPane, m.Keys.NextPage, m.Keys.PrevPage,
			m.Keys.Landing, m.Keys.Catalog, m.Keys.Account, m.Keys.About}},
		{"BOOKS", []key.Binding{m.Keys.Borrow, m.Keys.Buy, m.Keys.Remove, m.Keys.Return, m.Keys.Renew,
			m.Keys.Refresh, m.Keys.Logout, m.Keys.Quit}},
		{"CATALOG FILTERS", []key.Binding{m.Keys.Filter, m.Keys.Sort, m.Keys.Subject, m.Keys.WithCover,
			m.Keys.WithAuthor, m.Keys.Readable, m.Keys.Classic, m.Keys.Popular, m.Keys.ShortTitle, m.Keys.ClearFilter}},
	}

	columns := make([]string, 0, len(sections))
	for _, s := range sections {
		lines := []string{styles.ModalTitleStyle.Render(s.title)}
		for _, b := range s.bindings {
			h := b.Help()
			lines = append(lines, styles.HelpKeyStyle.Render(fmt.Sprintf("  %-10s", h.Key))+styles.HelpDescStyle.Render(h.Desc))
		}
		columns = append(columns, lipgloss.NewStyle().Width(30).Render(strings.Join(lines, "\n")))
	}

	help := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		"",
		styles.DimStyle.Render(fmt.Sprintf("Sort: %s · press any key to return...", sortOrders())),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

func sortOrders() string {
	labels := make([]string, len(search.SortOrders))
	for i, s := range search.SortOrders {
		labels[i] = s.Label()
	}
	return strings.Join(labels, ", ")
}

// RenderSpinner renders a spinner frame
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
