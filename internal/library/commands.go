package library

import (
	"strings"
	"time"

	"github.com/mmcdole/minitube/internal/domain"
)

// Remove deletes the entry with the given id. Absent ids are a no-op and
// trigger no write. Reports whether an entry was removed.
func (c *collection[T]) Remove(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	c.persist()
	c.logger.Debug("removed from collection", "key", c.kind.Key(), "id", id)
	return true
}

// WatchLater is the saved-for-later queue. Adding is idempotent.
type WatchLater struct {
	*collection[domain.VideoRef]
}

// Add inserts v at the front unless its video is already queued. Reports
// whether v was added.
func (w *WatchLater) Add(v domain.VideoRef) (bool, error) {
	if !v.Valid() {
		return false, domain.ErrInvalidVideo
	}
	v = normalizeVideo(v)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.insertFront(v) {
		return false, nil
	}
	w.logger.Debug("added to watch later", "videoID", v.VideoID)
	return true, nil
}

// Liked holds liked videos with toggle semantics.
type Liked struct {
	*collection[domain.VideoRef]
}

// Toggle un-likes v if present, otherwise likes it (inserted at the front).
// Only VideoID is needed to un-like. Returns the resulting liked state.
func (l *Liked) Toggle(v domain.VideoRef) (bool, error) {
	if !v.Valid() {
		return false, domain.ErrInvalidVideo
	}
	v = normalizeVideo(v)

	l.mu.Lock()
	defer l.mu.Unlock()

	liked := true
	if i := l.indexOf(v.VideoID); i >= 0 {
		l.removeAt(i)
		liked = false
	} else {
		l.prepend(v)
	}
	l.persist()
	l.logger.Debug("toggled like", "videoID", v.VideoID, "liked", liked)
	return liked, nil
}

// Add likes v unless it is already liked. Unlike Toggle it never removes.
// Reports whether v was added.
func (l *Liked) Add(v domain.VideoRef) (bool, error) {
	if !v.Valid() {
		return false, domain.ErrInvalidVideo
	}
	v = normalizeVideo(v)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.insertFront(v) {
		return false, nil
	}
	l.logger.Debug("liked", "videoID", v.VideoID)
	return true, nil
}

// History is the bounded watch history. Re-watching promotes an entry.
type History struct {
	*collection[domain.VideoRef]
	limit int
	now   func() time.Time
}

// Add moves v to the front stamped with the current time and evicts the
// oldest entries beyond the limit.
func (h *History) Add(v domain.VideoRef) error {
	if !v.Valid() {
		return domain.ErrInvalidVideo
	}
	v = normalizeVideo(v)
	v.WatchedAt = h.now().UTC()

	h.mu.Lock()
	defer h.mu.Unlock()

	if i := h.indexOf(v.VideoID); i >= 0 {
		h.removeAt(i)
	}
	h.prepend(v)
	if h.limit > 0 && len(h.items) > h.limit {
		h.items = h.items[:h.limit]
	}
	h.persist()
	h.logger.Debug("recorded history", "videoID", v.VideoID, "count", len(h.items))
	return nil
}

// Clear empties the history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = []domain.VideoRef{}
	h.persist()
	h.logger.Info("cleared history")
}

// Subscriptions holds subscribed channels with toggle semantics. New
// subscriptions are appended, so List is oldest first.
type Subscriptions struct {
	*collection[domain.ChannelRef]
}

// Toggle unsubscribes c if present, otherwise appends it. Returns the
// resulting subscribed state.
func (s *Subscriptions) Toggle(c domain.ChannelRef) (bool, error) {
	if !c.Valid() {
		return false, domain.ErrInvalidChannel
	}
	c = normalizeChannel(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	subscribed := true
	if i := s.indexOf(c.ChannelID); i >= 0 {
		s.removeAt(i)
		subscribed = false
	} else {
		s.items = append(s.items, c)
	}
	s.persist()
	s.logger.Debug("toggled subscription", "channelID", c.ChannelID, "subscribed", subscribed)
	return subscribed, nil
}

// Subscribe appends c unless already subscribed. Reports whether c was added.
func (s *Subscriptions) Subscribe(c domain.ChannelRef) (bool, error) {
	if !c.Valid() {
		return false, domain.ErrInvalidChannel
	}
	c = normalizeChannel(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(c.ChannelID) >= 0 {
		return false, nil
	}
	s.items = append(s.items, c)
	s.persist()
	s.logger.Debug("subscribed", "channelID", c.ChannelID)
	return true, nil
}

// normalizeVideo trims the id and drops WatchedAt, which only History sets.
func normalizeVideo(v domain.VideoRef) domain.VideoRef {
	v.VideoID = strings.TrimSpace(v.VideoID)
	v.WatchedAt = time.Time{}
	return v
}

func normalizeChannel(c domain.ChannelRef) domain.ChannelRef {
	c.ChannelID = strings.TrimSpace(c.ChannelID)
	return c
}
