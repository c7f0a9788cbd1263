package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// Inspector displays detailed metadata for the selected book
type Inspector struct {
	item   any
	width  int
	height int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetItem sets the item to display
func (i *Inspector) SetItem(item any) {
	i.item = item
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// HasItem returns true if there is an item to display
func (i Inspector) HasItem() bool {
	return i.item != nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	frameW, frameH := style.GetFrameSize()

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := i.width - frameW - 1
	if contentWidth < 10 {
		contentWidth = 10
	}

	lines := []string{styles.AccentStyle.Render("Info"), ""}
	lines = append(lines, i.render(contentWidth)...)

	// Clip to height
	maxLines := i.height - frameH
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(lines, "\n"))
}

func (i Inspector) render(width int) []string {
	switch v := i.item.(type) {
	case domain.Work:
		return renderWork(v, width)
	case domain.Ebook:
		return renderEbook(v, width)
	case domain.BorrowedBook:
		return renderBorrowed(v, width)
	default:
		return []string{styles.DimStyle.Render("No book selected")}
	}
}

func renderWork(w domain.Work, width int) []string {
	lines := wrapped(styles.TitleStyle, w.Title, width)
	lines = append(lines, wrapped(styles.SubtitleStyle, w.AuthorLine(), width)...)
	lines = append(lines, "")

	year := "unknown"
	if w.FirstPublishYear > 0 {
		year = fmt.Sprintf("%d", w.FirstPublishYear)
	}
	lines = append(lines,
		field("First published", year),
		field("Editions", fmt.Sprintf("%d", w.EditionCount)),
	)
	if w.Readable {
		lines = append(lines, styles.SuccessStyle.Render("Readable online"))
	}
	if w.HasCover() {
		lines = append(lines, "", styles.DimStyle.Render("Cover"))
		lines = append(lines, wrapped(styles.DimStyle, w.CoverURL, width)...)
	}
	if len(w.Subjects) > 0 {
		lines = append(lines, "", styles.DimStyle.Render("Subjects"))
		lines = append(lines, wrapped(styles.SubtitleStyle, strings.Join(w.Subjects, ", "), width)...)
	}
	return lines
}

func renderEbook(e domain.Ebook, width int) []string {
	lines := wrapped(styles.TitleStyle, e.Title, width)
	lines = append(lines, wrapped(styles.SubtitleStyle, e.Author, width)...)
	return append(lines, "", field("Format", string(e.Format)), field("ID", e.ID))
}

func renderBorrowed(b domain.BorrowedBook, width int) []string {
	lines := wrapped(styles.TitleStyle, b.Title, width)
	lines = append(lines, wrapped(styles.SubtitleStyle, b.Author, width)...)
	return append(lines, "", field("Due", b.Due), field("ID", b.ID))
}

func field(label, value string) string {
	return styles.DimStyle.Render(label+": ") + value
}

func wrapped(style lipgloss.Style, text string, width int) []string {
	var out []string
	for _, line := range strings.Split(wordWrap(text, width), "\n") {
		out = append(out, style.Render(line))
	}
	return out
}

// wordWrap wraps text at word boundaries
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
