// Package cache provides the process-wide read cache for hot public
// reads. Entries are keyed by request and carry resource tags; a
// mutation invalidates its tags and every tagged entry is dropped, so
// the next read reloads from the database. Reads served from here are
// reported with Source "cache" in the response envelope.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Source reports where a response payload came from
type Source string

const (
	SourceCache Source = "cache"
	SourceDB    Source = "db"
)

// Resource tags. Login and logout invalidate the three account tags
// together since authentication state affects all of them.
const (
	TagBuyer   = "Buyer"
	TagSeller  = "Seller"
	TagAdmin   = "Admin"
	TagProduct = "Product"
	TagCart    = "Cart"
	TagOrder   = "Order"
)

type entry struct {
	value   interface{}
	tags    []string
	expires time.Time
}

// Store is an in-memory TTL cache with tag-scoped invalidation
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// New creates a cache store with the given entry TTL
func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key if present and not expired
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key with the given resource tags
func (s *Store) Set(key string, value interface{}, tags ...string) {
	s.mu.Lock()
	s.entries[key] = entry{
		value:   value,
		tags:    tags,
		expires: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
}

// Invalidate drops every entry carrying any of the given tags
func (s *Store) Invalidate(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
entries:
	for key, e := range s.entries {
		for _, have := range e.tags {
			for _, want := range tags {
				if have == want {
					delete(s.entries, key)
					continue entries
				}
			}
		}
	}
}

// GetOrLoad returns the cached value for key, or runs load and caches
// the result under the given tags. The returned Source says which path
// served the value.
func (s *Store) GetOrLoad(ctx context.Context, key string, tags []string, load func(ctx context.Context) (interface{}, error)) (interface{}, Source, error) {
	if v, ok := s.Get(key); ok {
		return v, SourceCache, nil
	}
	v, err := load(ctx)
	if err != nil {
		return nil, SourceDB, err
	}
	s.Set(key, v, tags...)
	return v, SourceDB, nil
}

// Envelope is the wrapped response shape some endpoints emit:
// {"source": "cache"|"db", "data": <payload>}
type Envelope struct {
	Source Source      `json:"source"`
	Data   interface{} `json:"data"`
}

// envelopeShape mirrors Envelope for shape detection during Unwrap
type envelopeShape struct {
	Source *string         `json:"source"`
	Data   json.RawMessage `json:"data"`
}

// Unwrap normalizes a response body that may or may not be wrapped in
// an Envelope. If the body has the {source,data} shape the inner data
// is decoded into v and the source is returned; otherwise the raw body
// is decoded into v directly. Callers never branch on envelope shape
// themselves.
func Unwrap(raw []byte, v interface{}) (Source, error) {
	var shape envelopeShape
	if err := json.Unmarshal(raw, &shape); err == nil && shape.Source != nil && shape.Data != nil {
		return Source(*shape.Source), json.Unmarshal(shape.Data, v)
	}
	return "", json.Unmarshal(raw, v)
}
