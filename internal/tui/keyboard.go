package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/minitube/internal/domain"
	"github.com/mmcdole/minitube/internal/nav"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Back, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmClear:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			m.Library.History.Clear()
			m.Cursor = 0
			cmd := m.setStatus("Watch history cleared")
			return m, cmd
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil

	case StateFiltering:
		return m.handleFilterKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case key.Matches(msg, Keys.Down):
		if m.Cursor < m.rowCount()-1 {
			m.Cursor++
		}
		return m, nil

	case key.Matches(msg, Keys.Top):
		m.Cursor = 0
		return m, nil

	case key.Matches(msg, Keys.Bottom):
		m.Cursor = max(m.rowCount()-1, 0)
		return m, nil

	case key.Matches(msg, Keys.NextTab, Keys.PrevTab):
		if m.Route() != nav.Library {
			return m, nil
		}
		step := 1
		if key.Matches(msg, Keys.PrevTab) {
			step = len(libraryTabs) - 1
		}
		m.Tab = (m.Tab + step) % len(libraryTabs)
		m.resetRouteState()
		return m, nil

	case key.Matches(msg, Keys.Library):
		m.navigate(nav.Library)
		return m, nil

	case key.Matches(msg, Keys.Subs):
		m.navigate(nav.Subscriptions)
		return m, nil

	case key.Matches(msg, Keys.Back):
		return m.handleBack()

	case key.Matches(msg, Keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, Keys.Filter):
		if nav.IsWatch(m.Route()) {
			return m, nil
		}
		m.State = StateFiltering
		cmd := m.Filter.Focus()
		return m, cmd

	case key.Matches(msg, Keys.Like):
		return m.handleLike()

	case key.Matches(msg, Keys.WatchLater):
		return m.handleWatchLater()

	case key.Matches(msg, Keys.Subscribe):
		return m.handleSubscribe()

	case key.Matches(msg, Keys.Remove):
		return m.handleRemove()

	case key.Matches(msg, Keys.ClearHistory):
		if m.Route() == nav.Library && m.ActiveTab() == domain.CollectionHistory && m.Library.History.Len() > 0 {
			m.State = StateConfirmClear
		}
		return m, nil

	case key.Matches(msg, Keys.Minimize):
		return m.handleMinimize()

	case key.Matches(msg, Keys.Pause):
		if !m.Player.State().IsOpen {
			return m, nil
		}
		m.Player.TogglePause()
		cmd := m.setStatus(m.Player.Status().String())
		return m, cmd

	case key.Matches(msg, Keys.ClosePlayer):
		if !m.Player.State().IsOpen {
			return m, nil
		}
		m.Player.Close()
		cmd := m.setStatus("Mini-player closed")
		return m, cmd

	case key.Matches(msg, Keys.Expand):
		return m.handleExpand()
	}

	return m, nil
}

// handleFilterKey routes input to the filter box
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.resetRouteState()
		return m, nil
	case tea.KeyEnter:
		m.State = StateBrowsing
		m.Filter.Blur()
		return m, nil
	case tea.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.Cursor < m.rowCount()-1 {
			m.Cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	m.Cursor = 0
	return m, cmd
}

// handleBack clears an active filter, otherwise pops the route stack
func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if m.Filter.Value() != "" {
		m.resetRouteState()
		return m, nil
	}
	if m.Nav.Back() {
		m.resetRouteState()
	}
	return m, nil
}

// handleEnter opens the selection: a video plays on its watch route, a
// subscription opens its channel page
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.Route() == nav.Subscriptions {
		if c, ok := m.selectedChannel(); ok {
			m.navigate(nav.Channel(c.ChannelID))
		}
		return m, nil
	}
	if nav.IsWatch(m.Route()) {
		return m, nil
	}
	v, ok := m.selectedVideo()
	if !ok {
		return m, nil
	}
	cmd := m.watch(v)
	return m, cmd
}

func (m Model) handleLike() (tea.Model, tea.Cmd) {
	v, ok := m.selectedVideo()
	if !ok {
		return m, nil
	}
	liked, err := m.Library.Liked.Toggle(v)
	if err != nil {
		cmd := m.setError(rejection("like", err))
		return m, cmd
	}
	m.clampCursor()
	if liked {
		cmd := m.setStatus("Added to Liked videos")
		return m, cmd
	}
	cmd := m.setStatus("Removed from Liked videos")
	return m, cmd
}

func (m Model) handleWatchLater() (tea.Model, tea.Cmd) {
	v, ok := m.selectedVideo()
	if !ok {
		return m, nil
	}
	added, err := m.Library.WatchLater.Add(v)
	if err != nil {
		cmd := m.setError(rejection("save", err))
		return m, cmd
	}
	if !added {
		cmd := m.setStatus("Already in Watch Later")
		return m, cmd
	}
	cmd := m.setStatus("Saved to Watch Later")
	return m, cmd
}

func (m Model) handleSubscribe() (tea.Model, tea.Cmd) {
	c, ok := m.selectedChannel()
	if !ok {
		return m, nil
	}
	subscribed, err := m.Library.Subscriptions.Toggle(c)
	if err != nil {
		cmd := m.setError(rejection("subscribe", err))
		return m, cmd
	}
	m.clampCursor()
	if subscribed {
		cmd := m.setStatus("Subscribed to " + c.ChannelTitle)
		return m, cmd
	}
	cmd := m.setStatus("Unsubscribed from " + c.ChannelTitle)
	return m, cmd
}

// handleRemove deletes the selected row from the list being shown
func (m Model) handleRemove() (tea.Model, tea.Cmd) {
	switch m.Route() {
	case nav.Subscriptions:
		c, ok := m.selectedChannel()
		if !ok {
			return m, nil
		}
		m.Library.Subscriptions.Remove(c.ChannelID)
		m.clampCursor()
		cmd := m.setStatus("Unsubscribed from " + c.ChannelTitle)
		return m, cmd

	case nav.Library:
		v, ok := m.selectedVideo()
		if !ok {
			return m, nil
		}
		kind := m.ActiveTab()
		m.Library.Remove(kind, v.VideoID)
		m.clampCursor()
		cmd := m.setStatus(fmt.Sprintf("Removed from %s", kind))
		return m, cmd
	}
	return m, nil
}

// handleMinimize moves the video into the mini-player. On a watch route this
// also leaves the page, since the overlay is hidden there.
func (m Model) handleMinimize() (tea.Model, tea.Cmd) {
	v, ok := m.selectedVideo()
	if !ok {
		return m, nil
	}
	m.watching[v.VideoID] = v
	m.Player.Open(v)
	if nav.IsWatch(m.Route()) && m.Nav.Back() {
		m.resetRouteState()
	}
	return m, nil
}

// handleExpand opens the mini-player's video on its watch route
func (m Model) handleExpand() (tea.Model, tea.Cmd) {
	route, ok := m.Player.ExpandRoute()
	if !ok || route == m.Route() {
		return m, nil
	}
	v := m.Player.State().Video()
	if known, ok := m.watching[v.VideoID]; ok {
		v = known
	}
	cmd := m.watch(v)
	return m, cmd
}

// rejection formats a rejected mutation for the status line
func rejection(action string, err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidVideo):
		return fmt.Sprintf("Cannot %s: video has no id", action)
	case errors.Is(err, domain.ErrInvalidChannel):
		return fmt.Sprintf("Cannot %s: channel has no id", action)
	}
	return fmt.Sprintf("Cannot %s: %v", action, err)
}
