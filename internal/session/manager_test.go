package session

import (
	"errors"
	"testing"

	"github.com/autocheck-dev/autocheck/internal/checklist"
)

func testChecklist(t *testing.T) *checklist.Checklist {
	t.Helper()
	reg := checklist.BuiltinRegistry()
	cl, ok := reg.Get("checkup")
	if !ok {
		t.Fatal("builtin checkup checklist missing")
	}
	return cl
}

func TestStartAndGet(t *testing.T) {
	m := NewManager()
	cl := testChecklist(t)

	w := m.Start(cl, "mech-1")
	if w.ID == "" || w.ChecklistID != "checkup" {
		t.Fatalf("bad wizard: %+v", w)
	}

	got, err := m.Get(w.ID, "mech-1")
	if err != nil {
		t.Fatal(err)
	}
	if got != w {
		t.Fatal("Get returned a different wizard")
	}
}

func TestGetWrongOwner(t *testing.T) {
	m := NewManager()
	w := m.Start(testChecklist(t), "mech-1")

	if _, err := m.Get(w.ID, "mech-2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
	if _, err := m.Get("missing", "mech-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestStartReplacesExisting(t *testing.T) {
	m := NewManager()
	cl := testChecklist(t)

	first := m.Start(cl, "mech-1")
	second := m.Start(cl, "mech-1")

	if first.ID == second.ID {
		t.Fatal("expected a fresh session id")
	}
	if first.Sess.State() != checklist.StateCancelled {
		t.Fatalf("old session not cancelled: %s", first.Sess.State())
	}
	if _, err := m.Get(first.ID, "mech-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old session still reachable: %v", err)
	}
	if m.Active() != 1 {
		t.Fatalf("want 1 active, got %d", m.Active())
	}
}

func TestRemove(t *testing.T) {
	m := NewManager()
	w := m.Start(testChecklist(t), "mech-1")

	m.Remove(w.ID)
	if _, err := m.Get(w.ID, "mech-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after remove, got %v", err)
	}
	if m.Active() != 0 {
		t.Fatalf("want 0 active, got %d", m.Active())
	}

	// removing twice is a no-op
	m.Remove(w.ID)
}
