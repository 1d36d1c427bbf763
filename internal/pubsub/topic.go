// Package pubsub fans values out to any number of in-process subscribers.
package pubsub

import (
	"slices"
	"sync"
)

type Topic[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(T)
}

func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{subs: map[int]func(T){}}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

// Publish calls every subscriber in registration order. Callbacks run
// outside the lock so they may subscribe or unsubscribe.
func (t *Topic[T]) Publish(value T) {
	t.mu.RLock()
	ids := make([]int, 0, len(t.subs))
	fns := make(map[int]func(T), len(t.subs))
	for id, fn := range t.subs {
		ids = append(ids, id)
		fns[id] = fn
	}
	t.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		fns[id](value)
	}
}

func (t *Topic[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}
