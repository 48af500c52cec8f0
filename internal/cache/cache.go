// Package cache provides the key/value store behind the response cache and
// the entity cache, with a Redis backend and an in-process fallback.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/media-site/internal/metrics"
)

// Store is a byte-oriented key/value store with per-entry TTL.
// A ttl of 0 means the entry never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// KeyParts are the request values that take part in a response cache key.
type KeyParts struct {
	Slug  string
	Page  string
	Type  string
	Query string
	Year  string
}

// Key builds a response cache key from the route prefix and the non-empty
// parts, always in slug, page, type, query, year order.
func Key(prefix string, p KeyParts) string {
	parts := make([]string, 0, 6)
	for _, v := range []string{prefix, p.Slug, p.Page, p.Type, p.Query, p.Year} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "_")
}

// GetJSON reads key and decodes it into dst. Read errors and undecodable
// payloads are reported as a miss along with the cause.
func GetJSON(ctx context.Context, s Store, key string, dst interface{}) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data, ttl)
}

// instrumented counts hits and misses for a named store.
type instrumented struct {
	Store
	name string
}

// Instrument wraps s so that lookups and write failures are counted under name.
func Instrument(s Store, name string) Store {
	return &instrumented{Store: s, name: name}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := i.Store.Get(ctx, key)
	if ok {
		metrics.RecordCacheHit(i.name)
	} else {
		metrics.RecordCacheMiss(i.name)
	}
	return data, ok, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := i.Store.Set(ctx, key, value, ttl)
	if err != nil {
		metrics.RecordCacheWriteError(i.name)
	}
	return err
}
