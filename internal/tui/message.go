package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenmail/wren/internal/list"
	"github.com/wrenmail/wren/internal/mail"
)

const messageHelp = "/: find  n/p: next/prev match  a: save attachment  q: back"

// messageScreen shows one message: header fields, attachment rows and the
// body, with highlight search and attachment saving.
type messageScreen struct {
	app *App
	msg *mail.Message
	num int

	view   *list.View
	footer *footer

	// attachRows maps list row index to attachment index.
	attachRows map[int]int

	// pending attachment save awaiting overwrite confirmation
	pendingAtt  *mail.Attachment
	pendingPath string

	width, height int
}

func newMessageScreen(a *App, num int, msg *mail.Message) *messageScreen {
	return &messageScreen{
		app:    a,
		msg:    msg,
		num:    num,
		footer: newFooter(messageHelp),
		width:  80,
		height: 24,
	}
}

func (s *messageScreen) OnCreate() error {
	rows := []string{
		"Date: " + prettyDate(s.msg),
		"To: " + s.msg.To,
		"From: " + s.msg.From,
		"Subject: " + s.msg.Subject,
	}
	s.attachRows = make(map[int]int)
	for i, att := range s.msg.Attachments {
		rows = append(rows, fmt.Sprintf("Attachment: %s (%s)", att.Filename, att.ContentType))
		s.attachRows[len(rows)-1] = i
	}
	rows = append(rows, "")
	rows = append(rows, strings.Split(s.msg.BodyText, "\n")...)

	s.view = list.NewView(list.NewSource(list.Strings(rows)), s.bodyHeight())
	return nil
}

func (s *messageScreen) OnResume(Bundle) error { return nil }
func (s *messageScreen) OnPause()              {}
func (s *messageScreen) OnDestroy()            {}

func (s *messageScreen) Editing() bool {
	return s.footer.editing
}

func (s *messageScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	if s.view != nil {
		s.view.SetHeight(s.bodyHeight())
	}
}

func (s *messageScreen) bodyHeight() int {
	return max(s.height-2, 1)
}

func (s *messageScreen) OnKey(msg tea.KeyMsg) error {
	if handled, err := s.footer.handleKey(msg); handled {
		return err
	}
	key := msg.String()
	// An overwrite prompt captures everything until answered.
	if s.pendingAtt != nil {
		s.confirmOverwrite(key)
		return nil
	}
	if s.view.HandleKey(key) {
		return nil
	}

	switch key {
	case "/":
		s.footer.startEdit("/", "", s.applyHighlight)
	case "a", "enter":
		s.startSave()
	case "esc":
		return s.app.finish(s, nil)
	}
	return nil
}

// applyHighlight records and highlights the pattern across the message.
func (s *messageScreen) applyHighlight(pattern string) error {
	count, err := s.view.Highlight(pattern)
	if err != nil {
		return err
	}
	if count == 0 {
		s.footer.setError("Pattern not found")
		return nil
	}
	s.footer.setStatus(fmt.Sprintf("%d matching lines", count))
	return nil
}

// startSave begins the attachment save flow for the attachment under the
// cursor, or for the only attachment when there is exactly one.
func (s *messageScreen) startSave() {
	idx, ok := s.attachRows[s.view.Cursor()]
	if !ok {
		if len(s.msg.Attachments) != 1 {
			s.footer.setError("No attachment selected")
			return
		}
		idx = 0
	}
	att := &s.msg.Attachments[idx]

	name := att.Filename
	if name == "" {
		name = "attachment"
	}
	s.footer.startEdit("Save to: ", name, func(path string) error {
		s.savePath(att, path)
		return nil
	})
}

// savePath validates the destination and either writes the attachment or
// asks for overwrite confirmation.
func (s *messageScreen) savePath(att *mail.Attachment, path string) {
	if path == "" {
		s.footer.setError("Empty path")
		return
	}
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.footer.setError(fmt.Sprintf("No such directory: %s", dir))
		return
	}
	if _, err := os.Stat(path); err == nil {
		s.pendingAtt = att
		s.pendingPath = path
		s.footer.setStatus(fmt.Sprintf("Overwrite %s? (y/n)", path))
		return
	}
	s.writeAttachment(att, path)
}

func (s *messageScreen) confirmOverwrite(key string) {
	att, path := s.pendingAtt, s.pendingPath
	switch key {
	case "y", "Y":
		s.pendingAtt = nil
		s.pendingPath = ""
		s.writeAttachment(att, path)
	case "n", "N", "esc":
		s.pendingAtt = nil
		s.pendingPath = ""
		s.footer.setStatus("Not saved")
	}
	// Any other key keeps waiting for y/n.
}

func (s *messageScreen) writeAttachment(att *mail.Attachment, path string) {
	if err := os.WriteFile(path, att.Content, 0o644); err != nil {
		s.footer.setError(fmt.Sprintf("Save failed: %v", err))
		return
	}
	s.footer.setStatus("Saved " + path)
}

func (s *messageScreen) Draw() string {
	title := fmt.Sprintf(" Message %d  %s", s.num, s.msg.Subject)
	return drawScreen(title, s.view, s.footer, s.width, s.bodyHeight())
}
