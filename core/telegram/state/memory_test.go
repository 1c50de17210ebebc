package state

import "testing"

func TestMemoryManagerStateTransitions(t *testing.T) {
	m := NewMemoryManager()
	const userID int64 = 42

	if got := m.GetState(userID); got != StateIdle {
		t.Fatalf("expected idle for unknown user, got %q", got)
	}
	if m.InProgress(userID) {
		t.Fatalf("unknown user must not be in progress")
	}

	m.SetState(userID, State("awaiting_add_interest"))
	if got := m.GetState(userID); got != State("awaiting_add_interest") {
		t.Fatalf("expected awaiting state, got %q", got)
	}
	if !m.InProgress(userID) {
		t.Fatalf("user with active state must be in progress")
	}

	m.ClearState(userID)
	if got := m.GetState(userID); got != StateIdle {
		t.Fatalf("expected idle after clear, got %q", got)
	}
	if m.InProgress(userID) {
		t.Fatalf("cleared user must not be in progress")
	}
}

func TestMemoryManagerIsolatesUsers(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(1, State("awaiting_remove_interest"))

	if m.InProgress(2) {
		t.Fatalf("state of user 1 leaked to user 2")
	}
	if got := m.GetState(2); got != StateIdle {
		t.Fatalf("expected idle for other user, got %q", got)
	}
}
