// Package player holds the mini-player session: the video currently loaded
// in the overlay. The session lives in memory only and is never persisted.
package player

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/minitube/internal/domain"
	"github.com/mmcdole/minitube/internal/nav"
)

// Status is the observable state derived from IsOpen and IsPaused
type Status int

const (
	StatusClosed Status = iota
	StatusPlaying
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "closed"
	}
}

// StatusOf derives the status of a state snapshot
func StatusOf(state domain.PlayerState) Status {
	switch {
	case !state.IsOpen:
		return StatusClosed
	case state.IsPaused:
		return StatusPaused
	default:
		return StatusPlaying
	}
}

// Visible reports whether the mini-player should be drawn on route: a video
// must be loaded and the route must not be a full video-detail page.
func Visible(state domain.PlayerState, route string) bool {
	return state.IsOpen && !nav.IsWatch(route)
}

// Session is the process-wide mini-player. Create one in main and pass it to
// whatever renders it. All transitions are total; none can fail.
type Session struct {
	mu     sync.RWMutex
	state  domain.PlayerState
	logger *slog.Logger
}

// NewSession returns a closed session
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{logger: logger}
}

// Open loads v and starts playing, replacing whatever was loaded. A
// reference without a video id is ignored.
func (s *Session) Open(v domain.VideoRef) {
	id := strings.TrimSpace(v.VideoID)
	if id == "" {
		s.logger.Debug("ignoring mini-player open without video id")
		return
	}

	s.mu.Lock()
	s.state = domain.PlayerState{
		IsOpen:    true,
		VideoID:   id,
		Title:     v.Title,
		Channel:   v.Channel,
		Thumbnail: v.Thumbnail,
		IsPaused:  false,
	}
	s.mu.Unlock()

	s.logger.Debug("mini-player opened", "videoID", id)
}

// Close clears the session. It is the only way session state is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	wasOpen := s.state.IsOpen
	s.state = domain.PlayerState{}
	s.mu.Unlock()

	if wasOpen {
		s.logger.Debug("mini-player closed")
	}
}

// TogglePause flips between playing and paused. No-op when closed.
func (s *Session) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsOpen {
		return
	}
	s.state.IsPaused = !s.state.IsPaused
}

// State returns a snapshot of the session
func (s *Session) State() domain.PlayerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status returns the derived status
func (s *Session) Status() Status {
	return StatusOf(s.State())
}

// Visible reports whether the overlay should be drawn on route
func (s *Session) Visible(route string) bool {
	return Visible(s.State(), route)
}

// ExpandRoute returns the watch route of the loaded video
func (s *Session) ExpandRoute() (string, bool) {
	state := s.State()
	if !state.IsOpen {
		return "", false
	}
	return nav.Watch(state.VideoID), true
}
