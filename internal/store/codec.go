package store

import (
	"encoding/json"

	"github.com/mmcdole/minitube/internal/domain"
)

// Load decodes the value stored under key. A missing key or bytes that do not
// decode into T yield def; Load never fails.
func Load[T any](s domain.Store, key string, def T) T {
	data, ok := s.Get(key)
	if !ok || len(data) == 0 {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def
	}
	return v
}

// Save encodes v and writes it under key.
func Save[T any](s domain.Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, data)
}

// Remove deletes key.
func Remove(s domain.Store, key string) error {
	return s.Delete(key)
}
