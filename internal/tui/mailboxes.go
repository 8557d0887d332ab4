package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenmail/wren/internal/list"
	"github.com/wrenmail/wren/internal/mail"
)

const pickerHelp = "enter: select  q: back"

// mailboxesScreen lets the user switch to another mailbox of the active
// profile. It finishes with a MailboxSelected bundle.
type mailboxesScreen struct {
	app    *App
	reader *mail.Reader

	paths  []string
	view   *list.View
	footer *footer

	width, height int
}

func newMailboxesScreen(a *App) *mailboxesScreen {
	return &mailboxesScreen{
		app:    a,
		reader: a.reader,
		footer: newFooter(pickerHelp),
		width:  80,
		height: 24,
	}
}

func (s *mailboxesScreen) OnCreate() error {
	s.paths = s.reader.MailboxPaths()
	rows := make(list.Strings, len(s.paths))
	for i, p := range s.paths {
		rows[i] = mailboxTail(p)
	}
	s.view = list.NewView(list.NewSource(rows), s.bodyHeight())

	// Preselect the mailbox currently open.
	for i, p := range s.paths {
		if p == s.reader.Path() {
			s.view.JumpTo(i)
			break
		}
	}
	return nil
}

func (s *mailboxesScreen) OnResume(Bundle) error { return nil }
func (s *mailboxesScreen) OnPause()              {}
func (s *mailboxesScreen) OnDestroy()            {}

func (s *mailboxesScreen) Editing() bool {
	return false
}

func (s *mailboxesScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	if s.view != nil {
		s.view.SetHeight(s.bodyHeight())
	}
}

func (s *mailboxesScreen) bodyHeight() int {
	return max(s.height-2, 1)
}

func (s *mailboxesScreen) OnKey(msg tea.KeyMsg) error {
	key := msg.String()
	if s.view.HandleKey(key) {
		return nil
	}
	switch key {
	case "enter", "e":
		if len(s.paths) == 0 {
			return s.app.finish(s, nil)
		}
		return s.app.finish(s, MailboxSelected{Path: s.paths[s.view.Cursor()]})
	case "esc":
		return s.app.finish(s, nil)
	}
	return nil
}

func (s *mailboxesScreen) Draw() string {
	title := fmt.Sprintf(" Mailboxes  profile %s  %d found", s.reader.Profile().Name, len(s.paths))
	return drawScreen(title, s.view, s.footer, s.width, s.bodyHeight())
}
