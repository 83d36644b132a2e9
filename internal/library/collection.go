package library

import (
	"bytes"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/minitube/internal/domain"
	"github.com/mmcdole/minitube/internal/store"
)

// collection is an ordered, id-unique list persisted as one JSON array under
// the kind's key. Every mutation rewrites the full snapshot.
type collection[T any] struct {
	kind   domain.CollectionKind
	store  domain.Store
	logger *slog.Logger
	idOf   func(T) string
	clean  func(T) T // trims the key field of loaded entries

	mu    sync.RWMutex
	items []T
}

func newCollection[T any](kind domain.CollectionKind, s domain.Store, logger *slog.Logger, idOf func(T) string, clean func(T) T) *collection[T] {
	return &collection[T]{
		kind:   kind,
		store:  s,
		logger: logger,
		idOf:   idOf,
		clean:  clean,
		items:  []T{},
	}
}

// load replaces the in-memory list with the persisted snapshot. Unreadable
// snapshots become empty; ids are trimmed, invalid and duplicate entries are
// dropped (first occurrence wins); limit > 0 truncates.
func (c *collection[T]) load(limit int) {
	key := c.kind.Key()
	raw, present := c.store.Get(key)
	loaded := store.Load(c.store, key, []T{})

	if present && len(loaded) == 0 && !isEmptyDocument(raw) {
		c.logger.Warn("discarding unreadable collection", "key", key, "bytes", len(raw))
	}

	items := make([]T, 0, len(loaded))
	seen := make(map[string]struct{}, len(loaded))
	for _, item := range loaded {
		item = c.clean(item)
		id := c.idOf(item)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, item)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	if dropped := len(loaded) - len(items); dropped > 0 {
		c.logger.Warn("dropped invalid collection entries", "key", key, "dropped", dropped)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	c.logger.Debug("loaded collection", "key", key, "count", len(items))
}

// persist writes the current snapshot. Failures leave memory authoritative;
// the next successful write reconciles. Caller holds c.mu.
func (c *collection[T]) persist() {
	key := c.kind.Key()
	if err := store.Save(c.store, key, c.items); err != nil {
		c.logger.Warn("failed to persist collection", "key", key, "count", len(c.items), "error", err)
	}
}

// indexOf returns the position of id or -1. Caller holds c.mu.
func (c *collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool {
		return c.idOf(item) == id
	})
}

// insertFront prepends item and persists unless its id is present. Caller
// holds c.mu.
func (c *collection[T]) insertFront(item T) bool {
	if c.indexOf(c.idOf(item)) >= 0 {
		return false
	}
	c.prepend(item)
	c.persist()
	return true
}

func (c *collection[T]) prepend(item T) {
	c.items = slices.Insert(c.items, 0, item)
}

func (c *collection[T]) removeAt(i int) {
	c.items = slices.Delete(c.items, i, i+1)
}

func isEmptyDocument(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]"))
}
