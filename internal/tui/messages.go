package tui

// Message types for the TUI

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}
