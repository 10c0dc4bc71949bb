// Package hint decides which onboarding hint is currently active among the
// indicators mounted across the dashboard, tracks permanent dismissals, and
// persists them for the lifetime of a session.
package hint

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// viewedKey is the well-known storage key for the dismissed-hint set.
const viewedKey = "wraith.hints.viewed"

// KVStore is the minimal key-value surface the hint system persists through.
// Both methods may fail; the hint system absorbs every failure locally.
type KVStore interface {
	// Get returns the stored value for key, or "" when absent.
	Get(key string) (string, error)
	// Set stores value under key.
	Set(key, value string) error
}

// ---------------------------------------------------------------------------
// KVStore implementations
// ---------------------------------------------------------------------------

// Compile-time interface checks.
var _ KVStore = (*MemoryStore)(nil)
var _ KVStore = (*FileStore)(nil)

// MemoryStore is a KVStore backed by an in-process map. State is lost when
// the process exits.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

// Get returns the stored value for key, or "" when absent.
func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key], nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// FileStore is a KVStore that keeps each key in its own file under a
// directory, with the raw value as the file contents.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on first Set.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Get reads the file for key. A missing file is not an error and returns "".
func (s *FileStore) Get(key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Set writes value to the file for key.
func (s *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0644)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

// ---------------------------------------------------------------------------
// ViewedStore
// ---------------------------------------------------------------------------

// ViewedStore round-trips the dismissed-hint set through a KVStore. The
// stored value is a JSON array of hint ids. Read and write failures degrade
// to "nothing viewed yet" and "in-memory only" respectively; neither is ever
// surfaced to callers.
type ViewedStore struct {
	kv  KVStore
	log *slog.Logger
}

// NewViewedStore creates a ViewedStore persisting through kv.
func NewViewedStore(kv KVStore, log *slog.Logger) *ViewedStore {
	return &ViewedStore{kv: kv, log: log}
}

// Load reads the persisted viewed set. Absent, corrupt, or erroring storage
// all yield an empty set.
func (s *ViewedStore) Load() map[string]bool {
	viewed := make(map[string]bool)

	raw, err := s.kv.Get(viewedKey)
	if err != nil {
		s.log.Warn("reading viewed hints", "error", err)
		return viewed
	}
	if raw == "" {
		return viewed
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("decoding viewed hints, starting empty", "error", err)
		return viewed
	}
	for _, id := range ids {
		viewed[id] = true
	}
	return viewed
}

// Save writes the viewed set best-effort. On failure the in-memory set stays
// authoritative for the running session; only durability is lost.
func (s *ViewedStore) Save(viewed map[string]bool) {
	ids := make([]string, 0, len(viewed))
	for id := range viewed {
		ids = append(ids, id)
	}
	sort.Strings(ids) // stable on-disk representation; order carries no meaning

	data, err := json.Marshal(ids)
	if err != nil {
		s.log.Error("encoding viewed hints", "error", err)
		return
	}
	if err := s.kv.Set(viewedKey, string(data)); err != nil {
		s.log.Warn("persisting viewed hints", "error", err)
	}
}
