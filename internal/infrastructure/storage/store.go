// internal/infrastructure/storage/store.go
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable string key-value store. Carts and user sessions
// serialize themselves into it under fixed keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Scoped namespaces every key of the underlying store with prefix
func Scoped(store Store, prefix ...string) Store {
	parts := make([]string, 0, len(prefix))
	for _, p := range prefix {
		if p = strings.Trim(p, ":"); p != "" {
			parts = append(parts, p)
		}
	}
	return &scopedStore{inner: store, prefix: strings.Join(parts, ":")}
}

type scopedStore struct {
	inner  Store
	prefix string
}

func (s *scopedStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *scopedStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *scopedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.key(key), value)
}

func (s *scopedStore) Delete(ctx context.Context, keys ...string) error {
	scoped := make([]string, len(keys))
	for i, k := range keys {
		scoped[i] = s.key(k)
	}
	return s.inner.Delete(ctx, scoped...)
}
