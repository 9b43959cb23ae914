package memstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// Store guarda los objetos en un map; para dev sin MinIO y para tests.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
}

func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("object key required")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *Store) PublicURL(key string) string {
	return "mem://" + key
}

// Get existe para poder inspeccionar lo subido en tests.
func (s *Store) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return data, s.types[key], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
