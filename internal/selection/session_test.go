package selection

import "testing"

func enterWith(t *testing.T, ids ...string) *Session {
	t.Helper()
	s := NewSession()
	s.Enter()
	for _, id := range ids {
		if _, ok := s.Toggle(id, id); !ok {
			t.Fatalf("failed to select %s", id)
		}
	}
	return s
}

func assertEntries(t *testing.T, s *Session, want ...string) {
	t.Helper()
	entries := s.Entries()
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d (%v)", len(want), len(entries), entries)
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("expected entry %d to be %s, got %s", i, id, entries[i].ID)
		}
		if entries[i].Ordinal != i+1 {
			t.Fatalf("expected %s ordinal %d, got %d", id, i+1, entries[i].Ordinal)
		}
	}
}

func TestToggleTwiceRoundTrips(t *testing.T) {
	s := enterWith(t, "cnn", "bbc")
	if _, ok := s.Toggle("cnn", "CNN"); !ok {
		t.Fatalf("expected removal to succeed")
	}
	if _, ok := s.Toggle("cnn", "CNN"); !ok {
		t.Fatalf("expected re-add to succeed")
	}
	assertEntries(t, s, "bbc", "cnn")
}

func TestRemovalKeepsOrdinalsDense(t *testing.T) {
	s := enterWith(t, "a", "b", "c")
	if _, ok := s.Toggle("b", "B"); !ok {
		t.Fatalf("expected removal")
	}
	assertEntries(t, s, "a", "c")
}

func TestToggleRejectedAtCap(t *testing.T) {
	s := enterWith(t, "a", "b", "c", "d", "e")
	notice, ok := s.Toggle("f", "F")
	if ok {
		t.Fatalf("expected sixth channel to be rejected")
	}
	if notice.Text == "" {
		t.Fatalf("expected advisory notice at cap")
	}
	assertEntries(t, s, "a", "b", "c", "d", "e")
}

func TestCommitThresholds(t *testing.T) {
	// One entry: rejected, still selecting.
	s := enterWith(t, "a")
	if _, outcome, _ := s.Commit(); outcome != OutcomeNone {
		t.Fatalf("expected single-entry commit rejected, got %v", outcome)
	}
	if s.State() != Selecting {
		t.Fatalf("expected session still selecting, got %v", s.State())
	}

	// Zero entries: treated as cancel.
	s = enterWith(t)
	if _, outcome, _ := s.Commit(); outcome != OutcomeCancelled {
		t.Fatalf("expected empty commit to cancel, got %v", outcome)
	}
	if s.State() != Idle {
		t.Fatalf("expected idle after empty commit, got %v", s.State())
	}

	// Two entries: launch with entries returned in order.
	s = enterWith(t, "a", "b")
	entries, outcome, _ := s.Commit()
	if outcome != OutcomeLaunch {
		t.Fatalf("expected launch, got %v", outcome)
	}
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].ID != "b" {
		t.Fatalf("expected launch entries [a b], got %v", entries)
	}
	if s.State() != Idle {
		t.Fatalf("expected idle after launch, got %v", s.State())
	}
}

func TestBackPressEscalatesWithoutLoss(t *testing.T) {
	s := enterWith(t, "cnn", "bbc")
	if !s.RequestConfirm(TriggerBack) {
		t.Fatalf("expected escalation into confirmation")
	}
	if s.State() != ConfirmPending {
		t.Fatalf("expected ConfirmPending, got %v", s.State())
	}
	if s.Trigger() != TriggerBack {
		t.Fatalf("expected back trigger, got %v", s.Trigger())
	}
	assertEntries(t, s, "cnn", "bbc")

	// Continue Selecting returns with the identical entry set.
	if !s.ConfirmDismiss() {
		t.Fatalf("expected dismiss to succeed")
	}
	if s.State() != Selecting {
		t.Fatalf("expected Selecting after dismiss, got %v", s.State())
	}
	assertEntries(t, s, "cnn", "bbc")
}

func TestConfirmCancelDiscardsEntries(t *testing.T) {
	s := enterWith(t, "a", "b", "c")
	s.RequestConfirm(TriggerBack)
	s.ConfirmCancel()
	if s.State() != Idle {
		t.Fatalf("expected idle after cancel, got %v", s.State())
	}
	if s.Count() != 0 {
		t.Fatalf("expected entries discarded, got %d", s.Count())
	}
}

func TestConfirmLaunchRequiresTwo(t *testing.T) {
	s := enterWith(t, "a")
	s.RequestConfirm(TriggerBack)
	_, outcome, _ := s.ConfirmLaunch()
	if outcome != OutcomeNone {
		t.Fatalf("expected launch refused below minimum, got %v", outcome)
	}
	if s.State() != Selecting {
		t.Fatalf("expected fall back to Selecting, got %v", s.State())
	}
	assertEntries(t, s, "a")

	s = enterWith(t, "a", "b", "c")
	s.RequestConfirm(TriggerBack)
	entries, outcome, _ := s.ConfirmLaunch()
	if outcome != OutcomeLaunch || len(entries) != 3 {
		t.Fatalf("expected launch of 3, got %v (%v)", outcome, entries)
	}
	if s.State() != Idle {
		t.Fatalf("expected idle after launch, got %v", s.State())
	}
}

func TestEnterIsNoOpWhileActive(t *testing.T) {
	s := enterWith(t, "a", "b")
	s.Enter()
	assertEntries(t, s, "a", "b")
	if s.State() != Selecting {
		t.Fatalf("expected Selecting preserved, got %v", s.State())
	}
}

func TestContainsReportsOrdinal(t *testing.T) {
	s := enterWith(t, "a", "b")
	ordinal, ok := s.Contains("b")
	if !ok || ordinal != 2 {
		t.Fatalf("expected b at ordinal 2, got %d ok=%v", ordinal, ok)
	}
	if _, ok := s.Contains("z"); ok {
		t.Fatalf("expected z absent")
	}
}
