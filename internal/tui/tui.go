package tui

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Styles ---
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// displayNewlines maps carriage returns to plain line breaks for the preview.
var displayNewlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// --- Model ---

// Model is an append-only paste buffer. The text is kept byte for byte in
// raw; the textarea only previews it, since it rewrites tabs and carriage
// returns on input.
type Model struct {
	preview textarea.Model
	raw     string
	state   state
}

type state int

const (
	stateEditing state = iota
	stateSubmitted
	stateCancelled
)

func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Paste your code here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.Focus()
	return Model{
		preview: ta,
		state:   stateEditing,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlD:
			m.state = stateSubmitted
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.state = stateCancelled
			return m, tea.Quit
		case tea.KeyRunes:
			// Bracketed pastes arrive here whole, tabs and CRs included.
			m.raw += string(msg.Runes)
		case tea.KeySpace:
			m.raw += " "
		case tea.KeyEnter:
			m.raw += "\n"
		case tea.KeyTab:
			m.raw += "\t"
		case tea.KeyBackspace:
			_, size := utf8.DecodeLastRuneInString(m.raw)
			m.raw = m.raw[:len(m.raw)-size]
		case tea.KeyCtrlU:
			m.raw = ""
		default:
			return m, nil
		}
		m.preview.SetValue(displayNewlines.Replace(m.raw))
		return m, nil

	case tea.WindowSizeMsg:
		m.preview.SetWidth(msg.Width)
		// Header and footer take two lines each.
		m.preview.SetHeight(max(msg.Height-4, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.state != stateEditing {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("code2json"))
	b.WriteString("\n\n")
	b.WriteString(m.preview.View())
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("%s escape  %s clear  %s cancel",
		keyStyle.Render("ctrl+d"), keyStyle.Render("ctrl+u"), keyStyle.Render("esc"))))
	return b.String()
}

// Value returns the submitted text and whether the user submitted at all.
func (m Model) Value() (string, bool) {
	if m.state != stateSubmitted {
		return "", false
	}
	return m.raw, true
}

// Run shows the paste editor on stderr, keeping stdout free for the
// escaped output.
func Run() (string, bool, error) {
	p := tea.NewProgram(New(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	text, ok := final.(Model).Value()
	return text, ok, nil
}
