// api/analytics/storage.go
package analytics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"res4city/api/config"
)

// Storage is the engine's persistence abstraction. Values are opaque bytes
// keyed by fixed string keys. Implementations must treat read or parse
// failures as "absent": the engine defaults every missing key rather than
// erroring.
type Storage interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// MemoryStorage is a map-backed Storage for tests and ephemeral engines.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (s *MemoryStorage) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStorage) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
}

func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// FileStorage persists keys as one JSON object per file, loaded at open and
// rewritten on every mutation. Concurrent processes sharing the same file
// race last-write-wins on the whole blob.
type FileStorage struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	s := &FileStorage{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err == nil {
		// Malformed content is treated the same as a missing file.
		if jsonErr := json.Unmarshal(raw, &s.data); jsonErr != nil {
			config.Logger.Warnf("Discarding unreadable analytics storage %s: %v", path, jsonErr)
			s.data = make(map[string]string)
		}
	} else if !os.IsNotExist(err) {
		config.Logger.Warnf("Failed to read analytics storage %s: %v", path, err)
	}

	return s, nil
}

func (s *FileStorage) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false
	}
	return []byte(v), true
}

func (s *FileStorage) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = string(value)
	s.persistLocked()
}

func (s *FileStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	s.persistLocked()
}

func (s *FileStorage) persistLocked() {
	raw, err := json.Marshal(s.data)
	if err != nil {
		config.Logger.Warnf("Failed to encode analytics storage %s: %v", s.path, err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		config.Logger.Warnf("Failed to write analytics storage %s: %v", s.path, err)
	}
}
