package library

import (
	"slices"
	"strings"
)

// Contains reports whether an entry with the given id is present.
func (c *collection[T]) Contains(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// List returns a copy of the entries, most recent first (Subscriptions: oldest first).
func (c *collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len returns the number of entries.
func (c *collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
