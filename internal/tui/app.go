package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/minitube/internal/domain"
	"github.com/mmcdole/minitube/internal/library"
	"github.com/mmcdole/minitube/internal/nav"
	"github.com/mmcdole/minitube/internal/player"
	"github.com/mmcdole/minitube/internal/search"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateHelp
	StateConfirmClear
)

// libraryTabs are the video collections shown on the library route, in tab order
var libraryTabs = []domain.CollectionKind{
	domain.CollectionHistory,
	domain.CollectionWatchLater,
	domain.CollectionLiked,
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Core
	Library *library.Library
	Player  *player.Session
	Nav     *nav.History

	// Library route
	Tab    int // index into libraryTabs
	Cursor int
	Filter textinput.Model

	// Videos reachable from watch routes on the back stack, keyed by id
	watching map[string]domain.VideoRef

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool

	logger *slog.Logger
}

// NewModel creates a new application model starting at startRoute
func NewModel(lib *library.Library, session *player.Session, startRoute string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if startRoute == "" {
		startRoute = nav.Library
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"
	filter.CharLimit = 100

	return Model{
		State:    StateBrowsing,
		Library:  lib,
		Player:   session,
		Nav:      nav.NewHistory(startRoute),
		Filter:   filter,
		watching: make(map[string]domain.VideoRef),
		logger:   logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// Route returns the current route
func (m Model) Route() string {
	return m.Nav.Current()
}

// ActiveTab returns the collection shown on the library route
func (m Model) ActiveTab() domain.CollectionKind {
	return libraryTabs[m.Tab]
}

// Watching returns the video shown on the current watch route
func (m Model) Watching() (domain.VideoRef, bool) {
	id, ok := nav.WatchID(m.Route())
	if !ok {
		return domain.VideoRef{}, false
	}
	v, ok := m.watching[id]
	return v, ok
}

// visibleVideos returns the filtered videos of the current list route
func (m Model) visibleVideos() []search.Match {
	route := m.Route()
	if route == nav.Library {
		return search.FilterVideos(m.Filter.Value(), m.Library.Videos(m.ActiveTab()))
	}
	if id, ok := nav.ChannelID(route); ok {
		return search.FilterVideos(m.Filter.Value(), m.channelVideos(id))
	}
	return nil
}

// visibleChannels returns the filtered subscriptions
func (m Model) visibleChannels() []domain.ChannelRef {
	if m.Route() != nav.Subscriptions {
		return nil
	}
	return search.FilterChannels(m.Filter.Value(), m.Library.Subscriptions.List())
}

// channelVideos collects every locally known video of a channel, most recent
// collection entries first, without duplicates
func (m Model) channelVideos(channelID string) []domain.VideoRef {
	seen := make(map[string]struct{})
	var out []domain.VideoRef
	for _, kind := range libraryTabs {
		for _, v := range m.Library.Videos(kind) {
			if v.ChannelID != channelID {
				continue
			}
			if _, ok := seen[v.VideoID]; ok {
				continue
			}
			seen[v.VideoID] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// rowCount returns the number of selectable rows on the current route
func (m Model) rowCount() int {
	if m.Route() == nav.Subscriptions {
		return len(m.visibleChannels())
	}
	return len(m.visibleVideos())
}

// selectedVideo returns the video under the cursor, or the video of the
// current watch route
func (m Model) selectedVideo() (domain.VideoRef, bool) {
	if nav.IsWatch(m.Route()) {
		return m.Watching()
	}
	rows := m.visibleVideos()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return domain.VideoRef{}, false
	}
	return rows[m.Cursor].Video, true
}

// selectedChannel returns the channel targeted by the cursor or the current video
func (m Model) selectedChannel() (domain.ChannelRef, bool) {
	if m.Route() == nav.Subscriptions {
		rows := m.visibleChannels()
		if m.Cursor < 0 || m.Cursor >= len(rows) {
			return domain.ChannelRef{}, false
		}
		return rows[m.Cursor], true
	}
	v, ok := m.selectedVideo()
	if !ok {
		return domain.ChannelRef{}, false
	}
	c := v.ChannelRef()
	return c, c.Valid()
}

// clampCursor keeps the cursor within the current rows
func (m *Model) clampCursor() {
	n := m.rowCount()
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// navigate pushes route and resets per-route UI state
func (m *Model) navigate(route string) {
	m.Nav.Push(route)
	m.resetRouteState()
}

func (m *Model) resetRouteState() {
	m.Cursor = 0
	m.Filter.SetValue("")
	m.Filter.Blur()
	if m.State == StateFiltering {
		m.State = StateBrowsing
	}
}

// watch opens the watch route for v and records it in history
func (m *Model) watch(v domain.VideoRef) tea.Cmd {
	m.watching[v.VideoID] = v
	m.navigate(nav.Watch(v.VideoID))
	if err := m.Library.History.Add(v); err != nil {
		m.logger.Warn("history add rejected", "videoID", v.VideoID, "error", err)
		return m.setError("Cannot record history: " + err.Error())
	}
	return nil
}
