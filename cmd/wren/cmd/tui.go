package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenmail/wren/internal/mail"
	"github.com/wrenmail/wren/internal/tui"
)

// runTUI opens the mail storage and runs the interactive reader. Storage
// problems (missing profiles.ini, unreadable prefs.js, unknown profile) are
// fatal here, before the terminal is put into the alternate screen.
func runTUI() error {
	reader, err := mail.Open(cfg.Mail.StorageDir, cfg.Mail.Profile)
	if err != nil {
		return fmt.Errorf("open mail storage: %w", err)
	}
	defer reader.Close()

	app, err := tui.NewApp(reader, cfg.UI.FetchBatch)
	if err != nil {
		return fmt.Errorf("start ui: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return app.Err()
}
