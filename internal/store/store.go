// Package store provides the versioned, resettable persisted key-value state
// that backs the personalization engine: the user profile, progress counters,
// generated roadmap, and the coach conversation log.
package store

// KV is the raw key-value backend contract. Implementations: Memory (tests),
// File (local state), Postgres (shared deployment).
type KV interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	// Set stores value under key, overwriting any existing value
	Set(key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
	// Keys lists every stored key
	Keys() ([]string, error)
}
