package remote

import "testing"

func TestDispatchInvokesNewestFirst(t *testing.T) {
	s := NewStack()
	var order []string
	s.Push("older", func() bool {
		order = append(order, "older")
		return true
	})
	s.Push("newer", func() bool {
		order = append(order, "newer")
		return true
	})

	if !s.Dispatch() {
		t.Fatalf("expected signal to be claimed")
	}
	if len(order) != 1 || order[0] != "newer" {
		t.Fatalf("expected only newest handler to run, got %v", order)
	}
}

func TestDispatchFallsThroughUnclaimedHandlers(t *testing.T) {
	s := NewStack()
	var order []string
	s.Push("bottom", func() bool {
		order = append(order, "bottom")
		return true
	})
	s.Push("middle", func() bool {
		order = append(order, "middle")
		return false
	})
	s.Push("top", func() bool {
		order = append(order, "top")
		return false
	})

	if !s.Dispatch() {
		t.Fatalf("expected bottom handler to claim the signal")
	}
	want := []string{"top", "middle", "bottom"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("expected invocation order %v, got %v", want, order)
		}
	}
}

func TestDispatchReturnsFalseWhenNobodyClaims(t *testing.T) {
	s := NewStack()
	s.Push("quiet", func() bool { return false })
	if s.Dispatch() {
		t.Fatalf("expected unclaimed dispatch to report false")
	}

	empty := NewStack()
	if empty.Dispatch() {
		t.Fatalf("expected empty stack dispatch to report false")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := NewStack()
	token := s.Push("overlay", func() bool { return true })
	other := s.Push("other", func() bool { return false })

	token.Remove()
	if s.Len() != 1 {
		t.Fatalf("expected one remaining entry, got %d", s.Len())
	}
	token.Remove()
	if s.Len() != 1 {
		t.Fatalf("second remove must be a no-op, got %d entries", s.Len())
	}
	if !token.Removed() {
		t.Fatalf("expected token to report removed")
	}
	if other.Removed() {
		t.Fatalf("unrelated token must stay registered")
	}
}

func TestRemoveMiddlePreservesOrder(t *testing.T) {
	s := NewStack()
	var order []string
	s.Push("a", func() bool {
		order = append(order, "a")
		return true
	})
	middle := s.Push("b", func() bool {
		order = append(order, "b")
		return false
	})
	s.Push("c", func() bool {
		order = append(order, "c")
		return false
	})

	middle.Remove()
	if !s.Dispatch() {
		t.Fatalf("expected dispatch to be claimed")
	}
	want := []string{"c", "a"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestReplaceKeepsStackPosition(t *testing.T) {
	s := NewStack()
	var ran string
	token := s.Push("overlay", func() bool {
		ran = "stale"
		return true
	})
	s.Push("top", func() bool { return false })

	token.Replace(func() bool {
		ran = "fresh"
		return true
	})
	if !s.Dispatch() {
		t.Fatalf("expected replaced handler to claim")
	}
	if ran != "fresh" {
		t.Fatalf("expected refreshed closure to run, got %q", ran)
	}

	token.Remove()
	token.Replace(func() bool { return true })
	if s.Len() != 1 {
		t.Fatalf("replace after remove must not re-register, got %d entries", s.Len())
	}
}
