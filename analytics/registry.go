// api/analytics/registry.go
package analytics

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Registry lazily builds and caches one engine per user for the server-side
// ingest path. Each engine persists to its own file under the data
// directory, so profiles and activity survive restarts.
type Registry struct {
	mu       sync.Mutex
	dir      string
	engines  map[string]*Engine
	progress func(userID string) ProgressSource
	notifier func(userID string) Notifier
}

func NewRegistry(dir string, progress func(string) ProgressSource, notifier func(string) Notifier) *Registry {
	return &Registry{
		dir:      dir,
		engines:  make(map[string]*Engine),
		progress: progress,
		notifier: notifier,
	}
}

// Engine returns the engine owning userID's behavioral state.
func (r *Registry) Engine(userID string) (*Engine, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[userID]; ok {
		return e, nil
	}

	storage, err := NewFileStorage(filepath.Join(r.dir, userID+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics storage for user %s: %w", userID, err)
	}
	// The engine's anonymous id is the authenticated user id on the server
	// side; seeding it keeps the inactivity monitor armed.
	if _, ok := storage.Get(keyUserID); !ok {
		storage.Set(keyUserID, []byte(userID))
	}

	cfg := Config{}
	if r.progress != nil {
		cfg.Progress = r.progress(userID)
	}
	if r.notifier != nil {
		cfg.Notifier = r.notifier(userID)
	}

	e := NewEngine(storage, cfg)
	r.engines[userID] = e
	return e, nil
}
