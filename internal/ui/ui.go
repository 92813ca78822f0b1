package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/code2json/model"
)

const (
	successNotice = "✅ Copied to clipboard!"
	warningNotice = "⚠️ Clipboard unavailable"
	warningIcon   = "⚠️ "
)

// Emitter writes escaped text and notices to an output stream. Styles are
// resolved against that stream, so piped output stays plain.
type Emitter struct {
	out          io.Writer
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	faintStyle   lipgloss.Style
}

// NewEmitter creates an Emitter writing to out.
func NewEmitter(out io.Writer) *Emitter {
	r := lipgloss.NewRenderer(out)
	return &Emitter{
		out:          out,
		successStyle: r.NewStyle().Foreground(lipgloss.Color("78")),
		warningStyle: r.NewStyle().Foreground(lipgloss.Color("214")),
		faintStyle:   r.NewStyle().Faint(true),
	}
}

// Emit writes the escaped string followed by a newline.
func (e *Emitter) Emit(escaped model.EscapedString) error {
	_, err := fmt.Fprintln(e.out, string(escaped))
	return err
}

// Success reports a completed clipboard copy.
func (e *Emitter) Success() {
	fmt.Fprintln(e.out, e.successStyle.Render(successNotice))
}

// Warning reports that the clipboard could not be used. reason is printed
// as is, so it should already say what failed.
func (e *Emitter) Warning(reason error) {
	msg := warningNotice
	if reason != nil {
		msg = warningIcon + reason.Error()
	}
	fmt.Fprintln(e.out, e.warningStyle.Render(msg))
}

// Info writes a faint informational line.
func (e *Emitter) Info(format string, a ...interface{}) {
	fmt.Fprintln(e.out, e.faintStyle.Render(fmt.Sprintf(format, a...)))
}
