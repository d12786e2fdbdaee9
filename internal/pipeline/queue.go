package pipeline

import (
	"context"
	"sync"
)

// Queue is a bounded multi-slot conduit with drop-oldest overflow
// semantics. Unlike Signal it retains history up to its capacity, which
// matters for consumers that want to see every filtered value rather
// than only the most recent one. Offer never blocks the producer.
type Queue[T any] struct {
	mu sync.Mutex
	ch chan T
}

func NewQueue[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue[T]{
		ch: make(chan T, capacity),
	}
}

// Offer appends the given value. If the queue is full, the oldest value
// is discarded to make room.
func (q *Queue[T]) Offer(value T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		select {
		case q.ch <- value:
			return
		default:
			select {
			case <-q.ch:
			default:
			}
		}
	}
}

// Wait blocks until a value is available and returns the oldest one.
func (q *Queue[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case value := <-q.ch:
		return value, nil
	}
}

// Len returns the number of values currently queued.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}
