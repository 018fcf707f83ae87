package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/snonux/flashy/internal/session"
	"codeberg.org/snonux/flashy/internal/words"
)

// Run shows the trainer in the terminal until the user quits. The session
// must already be started.
func Run(s *session.Session, columns words.Columns) error {
	p := tea.NewProgram(New(s, columns), tea.WithAltScreen())

	// Send blocks until the event loop reads the message, and actions taken
	// inside Update notify synchronously, so hand off to a goroutine
	s.SetOnChange(func(snap session.Snapshot) {
		go p.Send(SnapshotMsg{Snapshot: snap})
	})
	defer s.SetOnChange(nil)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
