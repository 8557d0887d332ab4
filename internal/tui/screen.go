// Package tui provides the terminal user interface for wren: a stack of
// screens driven by a single bubbletea model.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Bundle carries a typed result from a finished screen to the screen that
// resumes below it.
type Bundle interface {
	bundle()
}

// MailboxSelected reports the mailbox picked on the mailbox screen.
type MailboxSelected struct {
	Path string
}

// ProfileSelected reports the profile picked on the profile screen.
type ProfileSelected struct {
	Name string
}

func (MailboxSelected) bundle() {}
func (ProfileSelected) bundle() {}

// Screen is one layer of the UI. The stack drives its lifecycle: OnCreate
// once after the push, then OnResume/OnPause as it gains and loses the top
// position, and OnDestroy once after the pop. Only the resumed (topmost)
// screen receives keys.
type Screen interface {
	OnCreate() error
	// OnResume makes the screen active. result is the bundle of the screen
	// that just finished above it, nil when resuming for any other reason.
	OnResume(result Bundle) error
	OnPause()
	OnDestroy()

	// OnKey handles one key press. The quit key is intercepted before OnKey
	// unless Editing reports true.
	OnKey(msg tea.KeyMsg) error

	// Editing reports whether the screen is capturing free text input.
	Editing() bool

	// SetSize informs the screen of the terminal dimensions.
	SetSize(width, height int)

	// Draw renders the full screen content.
	Draw() string
}

var (
	// ErrStackExhausted is returned when the last screen finishes.
	ErrStackExhausted = errors.New("tui: screen stack exhausted")

	// ErrInvalidTarget is returned when a screen that is not on top tries to
	// finish.
	ErrInvalidTarget = errors.New("tui: screen is not on top of the stack")
)

type screenState int

const (
	stateCreated screenState = iota
	stateResumed
	statePaused
	stateDestroyed
)

type stackEntry struct {
	screen Screen
	state  screenState
}

// Stack owns the live screens and enforces lifecycle ordering.
type Stack struct {
	entries []stackEntry
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len reports the number of live screens.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Screens returns the live screens, bottom first.
func (s *Stack) Screens() []Screen {
	out := make([]Screen, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.screen
	}
	return out
}

// Top returns the active screen, or nil when the stack is empty.
func (s *Stack) Top() Screen {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].screen
}

// Push pauses the current top, then creates and resumes the new screen.
func (s *Stack) Push(scr Screen) error {
	if top := s.top(); top != nil {
		top.screen.OnPause()
		top.state = statePaused
	}

	s.entries = append(s.entries, stackEntry{screen: scr, state: stateCreated})
	if err := scr.OnCreate(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return fmt.Errorf("create screen: %w", err)
	}
	if err := scr.OnResume(nil); err != nil {
		return fmt.Errorf("resume screen: %w", err)
	}
	s.entries[len(s.entries)-1].state = stateResumed
	return nil
}

// Finish pops scr, which must be the top screen, delivering result to the
// screen below. Finishing the last screen returns ErrStackExhausted: the
// application exits.
func (s *Stack) Finish(scr Screen, result Bundle) error {
	top := s.top()
	if top == nil || top.screen != scr {
		return ErrInvalidTarget
	}

	top.screen.OnPause()
	top.screen.OnDestroy()
	s.entries = s.entries[:len(s.entries)-1]

	next := s.top()
	if next == nil {
		return ErrStackExhausted
	}
	if err := next.screen.OnResume(result); err != nil {
		return fmt.Errorf("resume screen: %w", err)
	}
	next.state = stateResumed
	return nil
}

// Close destroys every remaining screen, top down.
func (s *Stack) Close() {
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := &s.entries[i]
		if e.state == stateResumed {
			e.screen.OnPause()
		}
		if e.state != stateDestroyed {
			e.screen.OnDestroy()
			e.state = stateDestroyed
		}
	}
	s.entries = nil
}

func (s *Stack) top() *stackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}
