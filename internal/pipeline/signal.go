// Package pipeline provides the in-process primitives that connect
// samplers to output controllers. Conduits are constructed explicitly at
// startup and handed to exactly one producer and one consumer; they live
// for the lifetime of the process.
package pipeline

import (
	"context"
	"sync"
)

// Sink is the producer side of a conduit. Offer never blocks.
type Sink[T any] interface {
	Offer(value T)
}

// Source is the consumer side of a conduit. Wait blocks until a value
// is available or the context is cancelled.
type Source[T any] interface {
	Wait(ctx context.Context) (T, error)
}

// Signal is a single-slot, latest-value-wins conduit: a new Offer
// discards any unread prior value, and Wait suspends the consumer until
// a value is pending.
type Signal[T any] struct {
	mu      sync.Mutex
	value   T
	pending bool
	notify  chan struct{}
}

func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{
		notify: make(chan struct{}, 1),
	}
}

// Offer stores the given value, overwriting any value that has not been
// consumed yet.
func (s *Signal[T]) Offer(value T) {
	s.mu.Lock()
	s.value = value
	s.pending = true
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Wait blocks until a value is pending, consumes it and clears the
// pending flag. Two consecutive calls never return the same Offer twice.
func (s *Signal[T]) Wait(ctx context.Context) (T, error) {
	for {
		s.mu.Lock()
		if s.pending {
			value := s.value
			s.pending = false
			s.mu.Unlock()
			return value, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-s.notify:
		}
	}
}

// Pending returns whether a value is currently waiting to be consumed.
func (s *Signal[T]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
