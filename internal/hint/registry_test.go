package hint

import "testing"

func TestRegistryRegisterIdempotent(t *testing.T) {
	r := NewRegistry()

	if !r.Register("a", 5) {
		t.Error("first Register should report insertion")
	}
	if r.Register("a", 1) {
		t.Error("duplicate Register should be ignored")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	// First registration wins: the original priority survives.
	e := r.Entries()[0]
	if e.Priority != 5 {
		t.Errorf("Priority = %d, want 5 (priority from first registration)", e.Priority)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("a", 1)
	r.Register("b", 2)

	if !r.Unregister("a") {
		t.Error("Unregister of present id should report removal")
	}
	if r.Contains("a") {
		t.Error("a should be gone after Unregister")
	}
	if r.Unregister("a") {
		t.Error("Unregister of absent id should be a no-op")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryReRegisterKeepsLaterSeq(t *testing.T) {
	r := NewRegistry()
	r.Register("a", 1)
	r.Register("b", 1)
	r.Unregister("a")
	r.Register("a", 1)

	// After unmount/remount, a registers later than b and loses the tie.
	id, ok := Select(r.Entries(), nil)
	if !ok || id != "b" {
		t.Errorf("Select after re-register = %q (ok=%v), want b", id, ok)
	}
}

func TestRegistryEntriesSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Register("a", 1)

	snap := r.Entries()
	r.Register("b", 2)

	if len(snap) != 1 {
		t.Errorf("snapshot mutated by later Register: len = %d, want 1", len(snap))
	}
}
