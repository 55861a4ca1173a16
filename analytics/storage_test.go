package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStorage(path)
	require.NoError(t, err)
	s.Set("k", []byte("v"))

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	v, ok := reopened.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(v))

	reopened.Delete("k")
	_, ok = reopened.Get("k")
	assert.False(t, ok)
}

func TestFileStorageMalformedFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStorage(path)
	require.NoError(t, err)
	_, ok := s.Get("anything")
	assert.False(t, ok)
}

func TestEngineStateSurvivesRestartOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStorage(path)
	require.NoError(t, err)
	e := NewEngine(s, Config{})
	e.TrackCoursePageView("course-detail", "c1")
	e.TrackPageView("home")

	s2, err := NewFileStorage(path)
	require.NoError(t, err)
	e2 := NewEngine(s2, Config{})

	assert.Equal(t, 2, e2.QueueLen())
	assert.Equal(t, 1, e2.Profiles()["c1"].Views)
	assert.Equal(t, e.SessionID(), e2.SessionID())
}

func TestMalformedQueueDefaultsToEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Set(keyEventQueue, []byte("][ not json"))
	storage.Set(keyInteractions, []byte("42"))

	e := NewEngine(storage, Config{})
	assert.Equal(t, 0, e.QueueLen())
	assert.Empty(t, e.Profiles())

	// Tracking still works after the corrupt state is discarded.
	e.TrackPageView("home")
	assert.Equal(t, 1, e.QueueLen())
}

func TestRegistryReusesAndPersists(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir, func(string) ProgressSource {
		return staticProgress{"c1": 10}
	}, nil)

	e1, err := reg.Engine("user-1")
	require.NoError(t, err)
	e1again, err := reg.Engine("user-1")
	require.NoError(t, err)
	assert.Same(t, e1, e1again)

	_, err = reg.Engine("")
	assert.Error(t, err)

	e1.TrackCoursePageView("course-detail", "c1")

	// A fresh registry over the same directory sees the same state.
	reg2 := NewRegistry(dir, nil, nil)
	e1reloaded, err := reg2.Engine("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, e1reloaded.Profiles()["c1"].Views)
	assert.Equal(t, "user-1", e1reloaded.UserID())
}
