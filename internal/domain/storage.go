package domain

// Store is the durable key-value medium behind the collections.
// Values are opaque JSON documents; one key holds one full collection snapshot.
type Store interface {
	// Get returns the raw value for key (false if absent)
	Get(key string) ([]byte, bool)

	// Set replaces the value for key
	Set(key string, data []byte) error

	// Delete removes key (absent keys are not an error)
	Delete(key string) error

	Close() error
}
