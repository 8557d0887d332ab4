package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenmail/wren/internal/list"
	"github.com/wrenmail/wren/internal/mail"
)

// mailboxCollection adapts the mail reader's current mailbox to the list
// engine, formatting message headers lazily.
type mailboxCollection struct {
	r *mail.Reader
}

func (c *mailboxCollection) Len() int {
	return c.r.Len()
}

func (c *mailboxCollection) Row(i int) (string, error) {
	msg, err := c.r.Message(i)
	if errors.Is(err, mail.ErrNotFound) {
		return "", list.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return headerLine(i, msg), nil
}

func (c *mailboxCollection) Sender(i int) string {
	msg, err := c.r.Message(i)
	if err != nil {
		return ""
	}
	return msg.From
}

func (c *mailboxCollection) Subject(i int) string {
	msg, err := c.r.Message(i)
	if err != nil {
		return ""
	}
	return msg.Subject
}

func (c *mailboxCollection) Body(i int) string {
	msg, err := c.r.Message(i)
	if err != nil {
		return ""
	}
	return msg.BodyText
}

func (c *mailboxCollection) Date(i int) (time.Time, bool) {
	msg, err := c.r.Message(i)
	if err != nil || msg.Date.IsZero() {
		return time.Time{}, false
	}
	return msg.Date, true
}

const (
	inboxHelp         = "enter: read  /: filter  m: mailboxes  p: profiles  q: quit"
	inboxFilteredHelp = "enter: read  u: unfilter  m: mailboxes  p: profiles  q: quit"
)

// inboxScreen is the root screen: the message list of the current mailbox.
type inboxScreen struct {
	app    *App
	reader *mail.Reader

	src    *list.Source
	view   *list.View
	footer *footer

	width, height int
	savedCursor   int // cursor position to restore on unfilter
}

func newInboxScreen(a *App) *inboxScreen {
	return &inboxScreen{
		app:    a,
		reader: a.reader,
		footer: newFooter(inboxHelp),
		width:  80,
		height: 24,
	}
}

func (s *inboxScreen) OnCreate() error {
	s.rebuild()
	return nil
}

// OnResume applies the selection made on a finished picker screen.
func (s *inboxScreen) OnResume(result Bundle) error {
	switch b := result.(type) {
	case MailboxSelected:
		if b.Path == s.reader.Path() {
			return nil
		}
		if err := s.reader.SetMailbox(b.Path); err != nil {
			return err
		}
		s.rebuild()
	case ProfileSelected:
		if b.Name == s.reader.Profile().Name {
			return nil
		}
		if err := s.reader.SetProfile(b.Name); err != nil {
			return err
		}
		s.rebuild()
	}
	return nil
}

func (s *inboxScreen) OnPause()   {}
func (s *inboxScreen) OnDestroy() {}

func (s *inboxScreen) Editing() bool {
	return s.footer.editing
}

func (s *inboxScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	if s.view != nil {
		s.view.SetHeight(s.bodyHeight())
	}
}

// rebuild resets the list over the reader's current mailbox, dropping any
// filter and cursor state.
func (s *inboxScreen) rebuild() {
	src := list.NewSource(&mailboxCollection{r: s.reader})
	src.SetFetchBatch(s.app.batch)
	s.src = src
	s.view = list.NewView(src, s.bodyHeight())
	s.savedCursor = 0
	s.footer.help = inboxHelp
	s.footer.status = ""
}

func (s *inboxScreen) bodyHeight() int {
	return max(s.height-2, 1)
}

func (s *inboxScreen) OnKey(msg tea.KeyMsg) error {
	// Sub-views get the key first: the footer while editing, then the list.
	if handled, err := s.footer.handleKey(msg); handled {
		return err
	}
	key := msg.String()
	if s.view.HandleKey(key) {
		return nil
	}

	switch key {
	case "/":
		if s.src.Filtered() {
			s.footer.setError("Already filtered, press u first")
			return nil
		}
		s.footer.startEdit("/", "", s.applyFilter)
	case "u":
		if !s.src.Filtered() {
			return nil
		}
		s.src.Unfilter()
		s.view.JumpTo(s.savedCursor)
		s.footer.help = inboxHelp
		s.footer.status = ""
	case "m":
		return s.app.push(newMailboxesScreen(s.app))
	case "p":
		return s.app.push(newProfilesScreen(s.app))
	case "enter", "e":
		return s.openMessage()
	}
	return nil
}

// applyFilter runs the filter query entered in the footer, remembering where
// the cursor was so unfilter can return there.
func (s *inboxScreen) applyFilter(query string) error {
	s.savedCursor = s.view.Cursor()
	if err := s.src.Filter(query); err != nil {
		return err
	}
	if !s.src.Filtered() {
		return nil
	}
	s.view.JumpTo(0)
	s.footer.help = inboxFilteredHelp
	s.footer.setStatus(fmt.Sprintf("%d of %d messages", s.src.Len(), s.reader.Len()))
	return nil
}

func (s *inboxScreen) openMessage() error {
	idx := s.src.Index(s.view.Cursor())
	if idx < 0 {
		return nil
	}
	msg, err := s.reader.Message(idx)
	if err != nil {
		s.footer.setError(fmt.Sprintf("Cannot read message %d", idx))
		return nil
	}
	return s.app.push(newMessageScreen(s.app, idx, msg))
}

func (s *inboxScreen) Draw() string {
	title := fmt.Sprintf(" %s  %s  %d messages  %s",
		s.reader.Profile().Name,
		mailboxTail(s.reader.Path()),
		s.reader.Len(),
		prettySize(s.reader.Size()))

	return drawScreen(title, s.view, s.footer, s.width, s.bodyHeight())
}
