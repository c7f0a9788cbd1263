package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/stacks/internal/tui/styles"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// LoginForm collects an email and password
type LoginForm struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	focused bool
	err     string
	demo    []string // demo account emails shown under the form
}

// NewLoginForm creates a new login form
func NewLoginForm() LoginForm {
	email := textinput.New()
	email.Placeholder = "emma@demo.com"
	email.CharLimit = 120
	email.Width = 30
	email.Prompt = "Email     "

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.Width = 30
	password.Prompt = "Password  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	f := LoginForm{inputs: [fieldCount]textinput.Model{email, password}}
	for i := range f.inputs {
		f.inputs[i].PromptStyle = styles.SubtitleStyle
		f.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		f.inputs[i].PlaceholderStyle = styles.DimStyle
	}
	return f
}

// Focus gives the form keyboard focus, starting at the email field
func (f *LoginForm) Focus() tea.Cmd {
	f.focused = true
	return f.setFocus(f.focus)
}

// Blur releases keyboard focus
func (f *LoginForm) Blur() {
	f.focused = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Focused reports whether the form is receiving keys
func (f LoginForm) Focused() bool {
	return f.focused
}

// Reset clears both fields and the error
func (f *LoginForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.err = ""
	f.focus = fieldEmail
}

// SetDemoUsers sets the demo account emails listed under the form
func (f *LoginForm) SetDemoUsers(emails []string) {
	f.demo = emails
}

// SetError sets the form-level error message
func (f *LoginForm) SetError(msg string) {
	f.err = msg
}

// Error returns the form-level error message
func (f LoginForm) Error() string {
	return f.err
}

// SetValues fills in both fields
func (f *LoginForm) SetValues(email, password string) {
	f.inputs[fieldEmail].SetValue(email)
	f.inputs[fieldPassword].SetValue(password)
}

// Values returns the entered email and password
func (f LoginForm) Values() (email, password string) {
	return f.inputs[fieldEmail].Value(), f.inputs[fieldPassword].Value()
}

func (f *LoginForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// Update handles input events, returns (form, cmd, submitted)
func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd, bool) {
	if !f.focused {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		switch keyMsg.String() {
		case "enter":
			if f.focus != fieldEmail {
				return f, nil, true
			}
			cmd = f.setFocus(fieldPassword)
			return f, cmd, false
		case "tab", "down":
			cmd = f.setFocus(f.focus + 1)
			return f, cmd, false
		case "shift+tab", "up":
			cmd = f.setFocus(f.focus - 1)
			return f, cmd, false
		case "esc":
			f.Blur()
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// View renders the login form
func (f LoginForm) View() string {
	const formWidth = 44

	hint := "enter to sign in · esc to leave the form"
	if !f.focused {
		hint = "enter to sign in"
	}

	parts := []string{
		styles.ModalTitleStyle.Render("Sign in"),
		f.inputs[fieldEmail].View(),
		f.inputs[fieldPassword].View(),
		"",
	}
	if f.err != "" {
		parts = append(parts, styles.ErrorStyle.Render(f.err))
	}
	parts = append(parts, styles.DimStyle.Render(hint))
	if len(f.demo) > 0 {
		parts = append(parts, "", styles.DimStyle.Render("Try a demo user:"))
		for _, email := range f.demo {
			parts = append(parts, styles.DimStyle.Render("  "+email))
		}
	}

	border := styles.InactiveBorder
	if f.focused {
		border = styles.ActiveBorder
	}
	return border.
		Padding(1, 2).
		Width(formWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
