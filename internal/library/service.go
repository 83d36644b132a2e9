package library

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/minitube/internal/domain"
)

// DefaultHistoryLimit caps the watch history.
const DefaultHistoryLimit = 100

// Library owns the four persisted user collections. Construct one per
// process with New and call Init before handing it to the view layer.
type Library struct {
	WatchLater    *WatchLater
	Liked         *Liked
	History       *History
	Subscriptions *Subscriptions

	store        domain.Store
	logger       *slog.Logger
	historyLimit int
	now          func() time.Time

	initOnce sync.Once
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger (slog.Default when nil or unset).
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHistoryLimit overrides DefaultHistoryLimit. Non-positive values are ignored.
func WithHistoryLimit(n int) Option {
	return func(l *Library) {
		if n > 0 {
			l.historyLimit = n
		}
	}
}

// WithClock sets the time source used to stamp history entries.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Library backed by s. Collections start empty until Init.
func New(s domain.Store, opts ...Option) *Library {
	l := &Library{
		store:        s,
		logger:       slog.Default(),
		historyLimit: DefaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	videoID := func(v domain.VideoRef) string { return v.VideoID }
	channelID := func(c domain.ChannelRef) string { return c.ChannelID }
	trimVideo := func(v domain.VideoRef) domain.VideoRef {
		v.VideoID = strings.TrimSpace(v.VideoID)
		return v
	}

	l.WatchLater = &WatchLater{newCollection(domain.CollectionWatchLater, s, l.logger, videoID, normalizeVideo)}
	l.Liked = &Liked{newCollection(domain.CollectionLiked, s, l.logger, videoID, normalizeVideo)}
	l.History = &History{
		collection: newCollection(domain.CollectionHistory, s, l.logger, videoID, trimVideo),
		limit:      l.historyLimit,
		now:        l.now,
	}
	l.Subscriptions = &Subscriptions{newCollection(domain.CollectionSubscriptions, s, l.logger, channelID, normalizeChannel)}
	return l
}

// Init loads every collection from the store. Only the first call reads;
// later calls keep the in-memory state, which stays authoritative even when
// writes have been failing.
func (l *Library) Init() {
	l.initOnce.Do(func() {
		l.WatchLater.load(0)
		l.Liked.load(0)
		l.History.load(l.historyLimit)
		l.Subscriptions.load(0)

		l.logger.Info("library loaded",
			"watchLater", l.WatchLater.Len(),
			"liked", l.Liked.Len(),
			"history", l.History.Len(),
			"subscriptions", l.Subscriptions.Len(),
		)
	})
}

// Videos returns the entries of a video collection (nil for Subscriptions).
func (l *Library) Videos(kind domain.CollectionKind) []domain.VideoRef {
	switch kind {
	case domain.CollectionWatchLater:
		return l.WatchLater.List()
	case domain.CollectionLiked:
		return l.Liked.List()
	case domain.CollectionHistory:
		return l.History.List()
	default:
		return nil
	}
}

// Remove deletes id from the given collection.
func (l *Library) Remove(kind domain.CollectionKind, id string) bool {
	switch kind {
	case domain.CollectionWatchLater:
		return l.WatchLater.Remove(id)
	case domain.CollectionLiked:
		return l.Liked.Remove(id)
	case domain.CollectionHistory:
		return l.History.Remove(id)
	case domain.CollectionSubscriptions:
		return l.Subscriptions.Remove(id)
	default:
		return false
	}
}

// Count returns the size of the given collection.
func (l *Library) Count(kind domain.CollectionKind) int {
	switch kind {
	case domain.CollectionWatchLater:
		return l.WatchLater.Len()
	case domain.CollectionLiked:
		return l.Liked.Len()
	case domain.CollectionHistory:
		return l.History.Len()
	case domain.CollectionSubscriptions:
		return l.Subscriptions.Len()
	default:
		return 0
	}
}

// Import adds videos to a collection in the given order, so the last video
// ends up first for front-inserting collections. Entries already present
// are left in place; for Subscriptions each video contributes its channel.
// Invalid references are skipped. Returns how many entries were added.
func (l *Library) Import(kind domain.CollectionKind, videos []domain.VideoRef) int {
	if kind == domain.CollectionSubscriptions {
		channels := make([]domain.ChannelRef, len(videos))
		for i, v := range videos {
			channels[i] = v.ChannelRef()
		}
		return l.ImportChannels(channels)
	}

	added := 0
	for _, v := range videos {
		var ok bool
		var err error
		switch kind {
		case domain.CollectionWatchLater:
			ok, err = l.WatchLater.Add(v)
		case domain.CollectionLiked:
			ok, err = l.Liked.Add(v)
		case domain.CollectionHistory:
			ok, err = true, l.History.Add(v)
		default:
			return added
		}
		if err != nil {
			l.logger.Debug("skipping import entry", "kind", kind.String(), "videoID", strings.TrimSpace(v.VideoID), "error", err)
			continue
		}
		if ok {
			added++
		}
	}
	return added
}

// ImportChannels subscribes to each channel not yet subscribed, in order.
// Returns how many were added.
func (l *Library) ImportChannels(channels []domain.ChannelRef) int {
	added := 0
	for _, c := range channels {
		ok, err := l.Subscriptions.Subscribe(c)
		if err != nil {
			l.logger.Debug("skipping import entry", "kind", domain.CollectionSubscriptions.String(), "channelID", strings.TrimSpace(c.ChannelID), "error", err)
			continue
		}
		if ok {
			added++
		}
	}
	return added
}
