package blobstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore provides an in-memory implementation of the Blobstore
// interface, used in tests.
type InMemoryStore struct {
	name     string
	mutex    sync.RWMutex
	blobs    map[string][]byte
	types    map[string]string
	versions map[string]string
}

var _ Blobstore = &InMemoryStore{}

// NewInMemoryStore creates an empty InMemoryStore with the given backend name.
func NewInMemoryStore(name string) *InMemoryStore {
	return &InMemoryStore{
		name:     name,
		blobs:    make(map[string][]byte),
		types:    make(map[string]string),
		versions: make(map[string]string),
	}
}

func (m *InMemoryStore) Name() string {
	return m.name
}

func (m *InMemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func (m *InMemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, NotFound{Key: key}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *InMemoryStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[key] = stored
	m.types[key] = contentType
	m.versions[key] = uuid.New().String()
	return "mem://" + m.name + "/" + key, nil
}

// Version returns the opaque version assigned by the last Put for a key, or
// the empty string if the key has never been written.
func (m *InMemoryStore) Version(key string) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.versions[key]
}

// ContentType returns the content type recorded by the last Put for a key.
func (m *InMemoryStore) ContentType(key string) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.types[key]
}
