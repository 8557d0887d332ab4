package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/wrenmail/wren/internal/list"
	"github.com/wrenmail/wren/internal/mail"
)

// Monochrome theme, adaptive for light and dark terminals. Status messages
// are the only colored elements.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	cursorRowStyle = lipgloss.NewStyle().Reverse(true)

	matchStyle = lipgloss.NewStyle().Reverse(true).Bold(true)

	helpStyle = lipgloss.NewStyle().Faint(true)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#007700", Dark: "#00cc00"})

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#bb0000", Dark: "#ff5555"})
)

const (
	fromWidth = 15
	dateWidth = 11
)

// headerLine formats one message row: number, a multipart marker, date,
// sender and subject in fixed columns.
func headerLine(n int, msg *mail.Message) string {
	marker := " "
	if msg.Multipart {
		marker = "a"
	}
	return fmt.Sprintf("%2d%s %*s  %s %s",
		n, marker, dateWidth, prettyDate(msg), prettyFrom(msg.From), msg.Subject)
}

// prettyDate renders the message date as "02 Jan 2006", falling back to the
// raw header when the date did not parse.
func prettyDate(msg *mail.Message) string {
	if !msg.Date.IsZero() {
		return msg.Date.Format("02 Jan 2006")
	}
	return runewidth.Truncate(msg.DateHeader, dateWidth, "")
}

// prettyFrom shows the sender's display name when present, the bare address
// otherwise, in a fixed-width column.
func prettyFrom(from string) string {
	s := from
	if i := strings.IndexByte(s, '<'); i > 0 {
		s = strings.TrimSpace(s[:i])
		s = strings.Trim(s, `"`)
	} else {
		s = strings.Trim(strings.TrimSpace(s), "<>")
	}
	return runewidth.FillRight(runewidth.Truncate(s, fromWidth, ""), fromWidth)
}

// prettySize renders a byte count in MiB, the unit mailbox files are usually
// discussed in.
func prettySize(bytes int64) string {
	return fmt.Sprintf("%.1f MiB", float64(bytes)/(1024*1024))
}

// mailboxTail shortens a mailbox path to its last two elements for headers.
func mailboxTail(path string) string {
	if path == "" {
		return "(no mailbox)"
	}
	dir := filepath.Base(filepath.Dir(path))
	return filepath.Join(dir, filepath.Base(path))
}

// renderLine draws one visible list row padded to width. The cursor row is
// rendered in reverse video as a whole, except while a highlight is active:
// reverse video is how matches are marked, so the cursor bar would hide them.
func renderLine(line list.Line, width int, highlighted bool) string {
	if line.Cursor && !highlighted {
		var b strings.Builder
		for _, span := range line.Spans {
			b.WriteString(span.Text)
		}
		return cursorRowStyle.Render(padRight(b.String(), width))
	}

	var b strings.Builder
	w := 0
	for _, span := range line.Spans {
		if span.Match {
			b.WriteString(matchStyle.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
		w += runewidth.StringWidth(span.Text)
	}
	if w < width {
		b.WriteString(strings.Repeat(" ", width-w))
	}
	return b.String()
}

// padRight pads s to width display columns. Widths are measured with ANSI
// sequences stripped, so styled content (the footer's text input) pads
// correctly.
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
