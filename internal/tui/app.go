package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenmail/wren/internal/mail"
)

// App is the bubbletea model driving the whole interface. It owns the screen
// stack and routes keys to the top screen. "q" closes the top screen (and the
// application once the stack is exhausted) unless that screen is capturing
// text input; ctrl+c always quits.
type App struct {
	reader *mail.Reader
	batch  int

	stack    *Stack
	width    int
	height   int
	quitting bool
	err      error
}

// NewApp builds the application with the inbox screen on the stack.
func NewApp(reader *mail.Reader, fetchBatch int) (*App, error) {
	a := &App{
		reader: reader,
		batch:  fetchBatch,
		stack:  NewStack(),
		width:  80,
		height: 24,
	}
	if err := a.push(newInboxScreen(a)); err != nil {
		return nil, err
	}
	return a, nil
}

// Err returns the error that terminated the application, if any.
func (a *App) Err() error {
	return a.err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = max(msg.Width, 1)
		a.height = max(msg.Height, 3)
		for _, scr := range a.stack.Screens() {
			scr.SetSize(a.width, a.height)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a.quit()
	}

	top := a.stack.Top()
	if top == nil {
		return a.quit()
	}

	if key == "q" && !top.Editing() {
		if err := a.finish(top, nil); err != nil {
			a.err = err
			return a.quit()
		}
		if a.quitting {
			return a.quit()
		}
		return a, nil
	}

	if err := top.OnKey(msg); err != nil {
		a.err = err
		return a.quit()
	}
	if a.quitting {
		return a.quit()
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	top := a.stack.Top()
	if top == nil {
		return ""
	}
	return top.Draw()
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.stack.Close()
	return a, tea.Quit
}

// push puts a screen on top of the stack, sized to the terminal.
func (a *App) push(scr Screen) error {
	scr.SetSize(a.width, a.height)
	return a.stack.Push(scr)
}

// finish pops scr with its result. Exhausting the stack flags the app for
// shutdown instead of surfacing an error.
func (a *App) finish(scr Screen, result Bundle) error {
	err := a.stack.Finish(scr, result)
	if errors.Is(err, ErrStackExhausted) {
		a.quitting = true
		return nil
	}
	return err
}
