package events

import "testing"

func TestSignalEmitOrder(t *testing.T) {
	var s Signal[int]
	var got []string

	s.Subscribe(func(v int) { got = append(got, "a") })
	s.Subscribe(func(v int) { got = append(got, "b") })
	s.Emit(1)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("handlers should run in registration order, got %v", got)
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	var s Signal[string]
	calls := 0

	unsub := s.Subscribe(func(string) { calls++ })
	s.Emit("x")
	unsub()
	unsub() // second call is a no-op
	s.Emit("y")

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if s.Len() != 0 {
		t.Errorf("expected no subscribers, got %d", s.Len())
	}
}

func TestSignalUnsubscribeDuringEmit(t *testing.T) {
	var s Signal[struct{}]
	var unsubB func()
	calls := map[string]int{}

	s.Subscribe(func(struct{}) {
		calls["a"]++
		unsubB()
	})
	unsubB = s.Subscribe(func(struct{}) { calls["b"]++ })

	s.Emit(struct{}{})
	s.Emit(struct{}{})

	// b still runs on the first emit (snapshot), never after
	if calls["a"] != 2 || calls["b"] != 1 {
		t.Errorf("unexpected calls %v", calls)
	}
}

func TestUnsubscribersRelease(t *testing.T) {
	var a Signal[int]
	var b Signal[bool]
	var subs Unsubscribers

	subs.Add(a.Subscribe(func(int) {}))
	subs.Add(b.Subscribe(func(bool) {}))
	subs.Release()

	if a.Len() != 0 || b.Len() != 0 {
		t.Errorf("Release should unsubscribe everything, got %d/%d", a.Len(), b.Len())
	}
	if len(subs) != 0 {
		t.Error("Release should clear the list")
	}
}
