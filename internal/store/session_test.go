package store

import (
	"path/filepath"
	"testing"
)

func openTestSession(t *testing.T) *SessionStore {
	t.Helper()
	s, err := OpenSession(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionStoreRoundTrip(t *testing.T) {
	s := openTestSession(t)

	if got, err := s.Get("absent"); err != nil || got != "" {
		t.Errorf("Get absent = (%q, %v), want (\"\", nil)", got, err)
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := s.Get("k"); got != "v1" {
		t.Errorf("Get = %q, want v1", got)
	}

	// Set replaces.
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("Set replace: %v", err)
	}
	if got, _ := s.Get("k"); got != "v2" {
		t.Errorf("Get after replace = %q, want v2", got)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := s.Get("k"); got != "" {
		t.Errorf("Get after delete = %q, want empty", got)
	}
}

func TestSessionStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s1, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if err := s1.Set("tab", "portfolio"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s1.Close()

	s2, err := OpenSession(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if got, _ := s2.Get("tab"); got != "portfolio" {
		t.Errorf("Get after reopen = %q, want portfolio", got)
	}
}

func TestSessionStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.db")
	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession with nested path: %v", err)
	}
	s.Close()
}
