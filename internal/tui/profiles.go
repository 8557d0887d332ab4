package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenmail/wren/internal/list"
	"github.com/wrenmail/wren/internal/mail"
)

// profilesScreen lets the user switch profiles. It finishes with a
// ProfileSelected bundle.
type profilesScreen struct {
	app    *App
	reader *mail.Reader

	names  []string
	view   *list.View
	footer *footer

	width, height int
}

func newProfilesScreen(a *App) *profilesScreen {
	return &profilesScreen{
		app:    a,
		reader: a.reader,
		footer: newFooter(pickerHelp),
		width:  80,
		height: 24,
	}
}

func (s *profilesScreen) OnCreate() error {
	profiles := s.reader.Profiles()
	s.names = make([]string, len(profiles))
	for i, p := range profiles {
		s.names[i] = p.Name
	}
	s.view = list.NewView(list.NewSource(list.Strings(s.names)), s.bodyHeight())

	for i, name := range s.names {
		if name == s.reader.Profile().Name {
			s.view.JumpTo(i)
			break
		}
	}
	return nil
}

func (s *profilesScreen) OnResume(Bundle) error { return nil }
func (s *profilesScreen) OnPause()              {}
func (s *profilesScreen) OnDestroy()            {}

func (s *profilesScreen) Editing() bool {
	return false
}

func (s *profilesScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	if s.view != nil {
		s.view.SetHeight(s.bodyHeight())
	}
}

func (s *profilesScreen) bodyHeight() int {
	return max(s.height-2, 1)
}

func (s *profilesScreen) OnKey(msg tea.KeyMsg) error {
	key := msg.String()
	if s.view.HandleKey(key) {
		return nil
	}
	switch key {
	case "enter", "e":
		if len(s.names) == 0 {
			return s.app.finish(s, nil)
		}
		return s.app.finish(s, ProfileSelected{Name: s.names[s.view.Cursor()]})
	case "esc":
		return s.app.finish(s, nil)
	}
	return nil
}

func (s *profilesScreen) Draw() string {
	title := fmt.Sprintf(" Profiles  %d found", len(s.names))
	return drawScreen(title, s.view, s.footer, s.width, s.bodyHeight())
}
