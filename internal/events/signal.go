// Package events provides typed, single-threaded observer lists used to
// publish gameplay signals to presentation layers.
package events

// Signal is a list of subscribers for one typed event.
//
// Architecture:
//   - Single-threaded dispatch, no locks
//   - Subscribers are invoked in registration order
//   - Emit iterates a snapshot, so subscribing or unsubscribing from inside
//     a handler affects only the next Emit
//
// The zero value is ready to use.
type Signal[T any] struct {
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers v to every current subscriber.
func (s *Signal[T]) Emit(v T) {
	if len(s.subs) == 0 {
		return
	}
	snapshot := make([]subscriber[T], len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		sub.fn(v)
	}
}

// Len returns the number of subscribers.
func (s *Signal[T]) Len() int {
	return len(s.subs)
}

// Unsubscribers collects unsubscribe functions so a component can release
// everything it subscribed to in one call.
type Unsubscribers []func()

// Add appends an unsubscribe function.
func (u *Unsubscribers) Add(fn func()) {
	*u = append(*u, fn)
}

// Release calls every collected function and clears the list.
func (u *Unsubscribers) Release() {
	for _, fn := range *u {
		fn()
	}
	*u = nil
}
