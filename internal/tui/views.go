package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenmail/wren/internal/list"
)

// drawScreen assembles the standard screen layout: a header line, the list
// body padded to bodyHeight, and the footer.
func drawScreen(title string, v *list.View, f *footer, width, bodyHeight int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(padRight(title, width)))
	b.WriteString("\n")

	rows := 0
	lines, err := v.Lines(width)
	if err != nil {
		b.WriteString(statusErrStyle.Render(padRight(err.Error(), width)))
		b.WriteString("\n")
		rows = 1
	} else {
		for _, line := range lines {
			b.WriteString(renderLine(line, width, v.Highlighted()))
			b.WriteString("\n")
		}
		rows = len(lines)
	}
	for ; rows < bodyHeight; rows++ {
		b.WriteString(strings.Repeat(" ", width))
		b.WriteString("\n")
	}

	b.WriteString(f.view(width))
	return b.String()
}

// footer is the one-line input and status area at the bottom of each screen.
// It shows static key help until a screen starts an edit or posts a status
// message.
type footer struct {
	input   textinput.Model
	editing bool
	submit  func(value string) error

	help      string
	status    string
	statusErr bool
}

func newFooter(help string) *footer {
	ti := textinput.New()
	ti.CharLimit = 200
	return &footer{input: ti, help: help}
}

// startEdit switches the footer into line-edit mode. submit runs on enter
// with the entered value; escape cancels without calling it.
func (f *footer) startEdit(prompt, initial string, submit func(string) error) {
	f.status = ""
	f.statusErr = false
	f.input.Prompt = prompt
	f.input.SetValue(initial)
	f.input.CursorEnd()
	f.input.Focus()
	f.editing = true
	f.submit = submit
}

func (f *footer) stopEdit() {
	f.editing = false
	f.submit = nil
	f.input.Blur()
	f.input.SetValue("")
}

// handleKey consumes every key while editing.
func (f *footer) handleKey(msg tea.KeyMsg) (handled bool, err error) {
	if !f.editing {
		return false, nil
	}
	switch msg.String() {
	case "enter":
		value := f.input.Value()
		submit := f.submit
		f.stopEdit()
		if submit != nil {
			return true, submit(value)
		}
		return true, nil
	case "esc", "ctrl+g":
		f.stopEdit()
		return true, nil
	}
	f.input, _ = f.input.Update(msg)
	return true, nil
}

func (f *footer) setStatus(msg string) {
	f.status = msg
	f.statusErr = false
}

func (f *footer) setError(msg string) {
	f.status = msg
	f.statusErr = true
}

func (f *footer) view(width int) string {
	if f.editing {
		return padRight(f.input.View(), width)
	}
	if f.status != "" {
		style := statusOKStyle
		if f.statusErr {
			style = statusErrStyle
		}
		return style.Render(padRight(f.status, width))
	}
	return helpStyle.Render(padRight(f.help, width))
}
