package form

import (
	"sort"
	"sync"
)

// Observable is the read side of a Slot.
type Observable[T any] interface {
	// Subscribe registers fn. If a value has been published, fn receives it
	// immediately, then every later value until the returned func is called.
	Subscribe(fn func(T)) (unsubscribe func())

	// Value returns the latest value and whether one was ever published.
	Value() (T, bool)
}

// Notifier is the read side of a Signal.
type Notifier interface {
	// Subscribe registers fn for every later fire. Past fires are not replayed.
	Subscribe(fn func()) (unsubscribe func())
}

// Slot holds the latest value of one piece of form state and fans changes out
// to subscribers. The zero value is ready to use.
//
// Callbacks run on the publishing goroutine and must not publish to the slot
// they observe.
type Slot[T any] struct {
	mu      sync.Mutex
	deliver sync.Mutex

	value  T
	set    bool
	closed bool
	nextID int
	subs   map[int]func(T)
}

// Publish stores v and delivers it to current subscribers.
// It is a no-op once the slot is closed.
func (s *Slot[T]) Publish(v T) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.value, s.set = v, true
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

func (s *Slot[T]) Subscribe(fn func(T)) func() {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	if s.subs == nil {
		s.subs = make(map[int]func(T))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	v, set := s.value, s.set
	s.mu.Unlock()

	if set {
		fn(v)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Slot[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// Close drops all subscribers and ignores later publishes.
func (s *Slot[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}

// snapshot returns subscribers in registration order. Caller holds s.mu.
func (s *Slot[T]) snapshot() []func(T) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}

// Signal is a valueless event, such as "the form is finished".
// The zero value is ready to use.
type Signal struct {
	mu      sync.Mutex
	deliver sync.Mutex

	fires  int
	closed bool
	nextID int
	subs   map[int]func()
}

// Fire notifies current subscribers and reports whether it fired. It is a
// no-op returning false once closed.
func (s *Signal) Fire() bool {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.fires++
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return true
}

func (s *Signal) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Fires returns how many times the signal has fired.
func (s *Signal) Fires() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fires
}

// Close drops all subscribers and ignores later fires.
func (s *Signal) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}
