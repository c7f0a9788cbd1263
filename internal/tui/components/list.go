package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// Lines used by each row and by the list title
const (
	rowHeight   = 2
	titleHeight = 2
)

// List is a bordered, scrollable list of books with a cursor
type List[T domain.ListItem] struct {
	title     string
	emptyText string
	items     []T
	matches   map[string][]int // item ID -> matched byte positions in the title
	cursor    int
	offset    int
	width     int
	height    int
	focused   bool
	loading   bool
}

// NewList creates an empty list
func NewList[T domain.ListItem](title, emptyText string) List[T] {
	return List[T]{title: title, emptyText: emptyText}
}

// SetItems replaces the items, keeping the cursor on the same ID when it
// is still present
func (l *List[T]) SetItems(items []T) {
	var selectedID string
	if cur, ok := l.Selected(); ok {
		selectedID = cur.GetID()
	}

	l.items = items
	l.loading = false
	l.cursor = 0
	for i, it := range items {
		if it.GetID() == selectedID {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

// Items returns the displayed items
func (l List[T]) Items() []T {
	return l.items
}

// Len returns the number of items
func (l List[T]) Len() int {
	return len(l.items)
}

// SetMatches sets the fuzzy-match positions to highlight
func (l *List[T]) SetMatches(matches map[string][]int) {
	l.matches = matches
}

// SetTitle sets the heading
func (l *List[T]) SetTitle(title string) {
	l.title = title
}

// Title returns the heading
func (l List[T]) Title() string {
	return l.title
}

// SetEmptyText sets the text shown when there are no items
func (l *List[T]) SetEmptyText(text string) {
	l.emptyText = text
}

// SetLoading shows a loading placeholder until SetItems is called
func (l *List[T]) SetLoading(loading bool) {
	l.loading = loading
}

// SetFocused marks the list as receiving cursor keys
func (l *List[T]) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused reports whether the list has focus
func (l List[T]) IsFocused() bool {
	return l.focused
}

// SetSize updates the component dimensions
func (l *List[T]) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// Selected returns the item under the cursor
func (l List[T]) Selected() (T, bool) {
	var zero T
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return zero, false
	}
	return l.items[l.cursor], true
}

// Cursor returns the cursor position
func (l List[T]) Cursor() int {
	return l.cursor
}

// MoveUp moves the cursor up one row
func (l *List[T]) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

// MoveDown moves the cursor down one row
func (l *List[T]) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

func (l *List[T]) maxVisible() int {
	_, frameH := styles.InactiveBorder.GetFrameSize()
	n := (l.height - frameH - titleHeight) / rowHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (l *List[T]) ensureVisible() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	// Don't adjust offset if size hasn't been set yet
	if l.height <= 0 {
		return
	}
	visible := l.maxVisible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset > len(l.items)-visible {
		l.offset = len(l.items) - visible
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the component
func (l List[T]) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	contentWidth := l.width - frameW - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	return style.
		Width(l.width - frameW).
		Height(l.height - frameH).
		Render(l.renderContent(contentWidth))
}

func (l List[T]) renderContent(width int) string {
	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render(styles.Truncate(l.title, width)))
	b.WriteString("\n\n")

	if l.loading {
		b.WriteString(styles.DimStyle.Render("Loading..."))
		return b.String()
	}
	if len(l.items) == 0 {
		b.WriteString(styles.DimStyle.Render(l.emptyText))
		return b.String()
	}

	end := l.offset + l.maxVisible()
	if l.height <= 0 || end > len(l.items) {
		end = len(l.items)
	}
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderRow(l.items[i], i == l.cursor, width))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (l List[T]) renderRow(item T, selected bool, width int) string {
	title := styles.Truncate(item.GetTitle(), width-2)
	desc := styles.Truncate(item.GetDescription(), width-2)

	titleStyle := styles.NormalItemStyle
	if selected && l.focused {
		titleStyle = styles.SelectedItemStyle
	}
	titleStyle = titleStyle.Width(width)

	if positions, ok := l.matches[item.GetID()]; ok && len(positions) > 0 {
		title = highlight(title, positions, titleStyle)
	}

	return titleStyle.Render(title) + "\n" + styles.ItemDescStyle.Render(desc)
}

// highlight renders the runes starting at the matched byte positions in
// the accent colour
func highlight(s string, positions []int, base lipgloss.Style) string {
	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}
	accent := base.Foreground(styles.Parchment).Bold(true).Padding(0).Width(0)
	plain := base.Padding(0).Width(0)

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(accent.Render(string(r)))
		} else {
			b.WriteString(plain.Render(string(r)))
		}
	}
	return b.String()
}
