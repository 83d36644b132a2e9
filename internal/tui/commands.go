package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusDuration is how long a status message stays on screen
const statusDuration = 3 * time.Second

// ClearStatusCmd returns a command that clears the status after delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// setStatus shows an informational message and schedules its removal
func (m *Model) setStatus(msg string) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = false
	return ClearStatusCmd(statusDuration)
}

// setError shows an error message and schedules its removal
func (m *Model) setError(msg string) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = true
	return ClearStatusCmd(statusDuration)
}
