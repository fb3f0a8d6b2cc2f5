// Package dispatch routes values produced on arbitrary goroutines (typically
// OS notification threads) either into a polling queue or into a single
// registered handler.
package dispatch

import "sync"

// Handler receives dispatched values synchronously on the sending goroutine.
type Handler[T any] func(T)

// Core is a queue plus a write-once handler slot. Once the slot holds a value
// it never changes for the life of the Core.
type Core[T any] struct {
	queue *Queue[T]

	once    sync.Once
	handler Handler[T]
}

// New returns a Core with an empty queue and an unset handler slot.
func New[T any]() *Core[T] {
	return &Core[T]{queue: NewQueue[T]()}
}

// Receiver returns the queue values are delivered to when no handler is set.
// The same queue is returned on every call.
func (c *Core[T]) Receiver() *Queue[T] {
	return c.queue
}

// SetHandler fills the handler slot. Only the first call, or the first Send,
// decides its content; every later call is ignored. A nil handler keeps
// values flowing to the queue but still occupies the slot.
func (c *Core[T]) SetHandler(h Handler[T]) {
	c.once.Do(func() {
		c.handler = h
	})
}

// Send delivers v to the handler if one is set, otherwise it enqueues v. A
// Send before any SetHandler locks the slot to "no handler". Panics from the
// handler propagate to the caller.
func (c *Core[T]) Send(v T) {
	c.once.Do(func() {})
	if c.handler != nil {
		c.handler(v)
		return
	}
	c.queue.Push(v)
}
