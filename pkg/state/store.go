package state

import "strings"

// Store is the mutable key-value state backing one active submission. It is
// the only mutable state in the system; specs and components address into it
// via the key helpers in this package. Implementations are not required to be
// safe for concurrent use — a store belongs to exactly one session.
type Store interface {
	// Get returns the value stored under key, or def when absent.
	Get(key string, def any) any
	// Set stores value under key, replacing any previous value.
	Set(key string, value any)
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string)
	// Keys returns a copy of all keys currently present.
	Keys() []string
}

// MemoryStore is the in-process Store used by the CLI and by tests.
type MemoryStore struct {
	values map[string]any
}

// NewMemoryStore creates an empty session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

func (s *MemoryStore) Get(key string, def any) any {
	if s == nil || s.values == nil {
		return def
	}
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

func (s *MemoryStore) Set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
}

func (s *MemoryStore) Delete(key string) {
	delete(s.values, key)
}

func (s *MemoryStore) Keys() []string {
	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	return out
}

// Len reports the number of stored keys.
func (s *MemoryStore) Len() int {
	return len(s.values)
}

// ClearPrefix removes every key under the given namespace prefix. Used when a
// submission is reset so the next run of the same FormSpec starts clean.
func ClearPrefix(s Store, prefix string) int {
	removed := 0
	for _, key := range s.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.Delete(key)
			removed++
		}
	}
	return removed
}

// GetString reads key and coerces the value to a trimmed string. Non-string
// values yield def; absent keys yield def.
func GetString(s Store, key, def string) string {
	v := s.Get(key, nil)
	if v == nil {
		return def
	}
	if str, ok := v.(string); ok {
		return strings.TrimSpace(str)
	}
	return def
}

// GetInt reads key as an int, tolerating the numeric types a prompt driver
// may write.
func GetInt(s Store, key string, def int) int {
	switch v := s.Get(key, nil).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// GetBool reads key as a bool, defaulting when absent or mistyped.
func GetBool(s Store, key string, def bool) bool {
	if v, ok := s.Get(key, nil).(bool); ok {
		return v
	}
	return def
}
