package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// RosterKey is where a session's fetched roster JSON is kept.
const RosterKey = "playersData"

// Cache stores opaque values per browser session. Values are never
// interpreted, only handed back as they were stored.
type Cache interface {
	// Get returns the stored value and true, or false when nothing is stored.
	Get(ctx context.Context, session, key string) ([]byte, bool, error)
	Set(ctx context.Context, session, key string, value []byte) error
}

func sessionKey(session, key string) string {
	return fmt.Sprintf("session:%s:%s", session, key)
}

// DefaultSize is how many sessions the memory cache keeps by default.
const DefaultSize = 1024

type memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory returns a process local cache holding at most size entries. The
// least recently used entry is evicted first and entries older than ttl are
// dropped. A ttl of 0 means entries only leave through eviction.
func NewMemory(size int, ttl time.Duration) Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *memory) Get(_ context.Context, session, key string) ([]byte, bool, error) {
	v, found := m.lru.Get(sessionKey(session, key))
	if !found {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *memory) Set(_ context.Context, session, key string, value []byte) error {
	m.lru.Add(sessionKey(session, key), append([]byte(nil), value...))
	return nil
}
