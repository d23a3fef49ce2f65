// Package memory is an in-process storage.Store used by tests and local
// development when no bucket is available.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/codelabs/catalog-backend/pkg/storage"
)

type Store struct {
	mu      sync.RWMutex
	objects map[string]storage.Object
}

func New() *Store {
	return &Store{objects: make(map[string]storage.Object)}
}

func (s *Store) Put(_ context.Context, obj storage.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := storage.Object{
		Key:         obj.Key,
		Content:     append([]byte(nil), obj.Content...),
		ContentType: obj.ContentType,
	}
	if len(obj.Metadata) > 0 {
		stored.Metadata = make(map[string]string, len(obj.Metadata))
		for k, v := range obj.Metadata {
			stored.Metadata[k] = v
		}
	}
	s.objects[obj.Key] = stored
	return nil
}

func (s *Store) Get(_ context.Context, key string) (storage.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return storage.Object{}, storage.ErrObjectNotFound
	}
	return obj, nil
}

func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.objects, key)
	}
	return nil
}

// Len reports how many objects are stored. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
