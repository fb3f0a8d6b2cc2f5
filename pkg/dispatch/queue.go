package dispatch

import (
	"container/list"
	"context"
	"sync"
)

// Queue is an unbounded FIFO safe for many producers and many consumers.
// Each pushed value is received by exactly one consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	items list.List
	ready chan struct{} // closed on push while consumers wait
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends v. It never blocks and never drops.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items.PushBack(v)
	if q.ready != nil {
		close(q.ready)
		q.ready = nil
	}
	q.mu.Unlock()
}

// TryRecv returns the oldest value, or false if the queue is empty.
func (q *Queue[T]) TryRecv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pop()
}

// Recv blocks until a value is available.
func (q *Queue[T]) Recv() T {
	v, _ := q.RecvContext(context.Background())
	return v
}

// RecvContext blocks until a value is available or ctx is done.
func (q *Queue[T]) RecvContext(ctx context.Context) (T, error) {
	for {
		q.mu.Lock()
		if v, ok := q.pop(); ok {
			q.mu.Unlock()
			return v, nil
		}
		if q.ready == nil {
			q.ready = make(chan struct{})
		}
		ready := q.ready
		q.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Len reports the number of queued values.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

func (q *Queue[T]) pop() (T, bool) {
	front := q.items.Front()
	if front == nil {
		var zero T
		return zero, false
	}
	return q.items.Remove(front).(T), true
}
