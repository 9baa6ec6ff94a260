// bus.go
package bus

import (
	"context"
	"sync"
)

// -----------------------------------------------------------------------------
// Queue
// -----------------------------------------------------------------------------

// Queue is an unbounded, FIFO, multi-producer single-consumer queue.
//
// Send never blocks and never drops. Items from one producer are received in
// the order that producer sent them; items from different producers are
// received in arrival order.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
	ready chan struct{} // 1-slot edge: queue went from empty to non-empty

	sent uint32
	max  int // high-water mark
}

// NewQueue creates an empty queue. hint pre-sizes the backing slice.
func NewQueue[T any](hint int) *Queue[T] {
	if hint <= 0 {
		hint = 8 // safe default
	}
	return &Queue[T]{
		items: make([]T, 0, hint),
		ready: make(chan struct{}, 1),
	}
}

// Send appends v. It never blocks.
func (q *Queue[T]) Send(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.sent++
	if n := len(q.items) - q.head; n > q.max {
		q.max = n
	}
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// TryRecv removes the oldest item if one is present.
func (q *Queue[T]) TryRecv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Recv blocks until an item is available or ctx is done.
func (q *Queue[T]) Recv(ctx context.Context) (T, error) {
	for {
		if v, ok := q.TryRecv(); ok {
			return v, nil
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-q.ready:
		}
	}
}

// Len reports the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Stats reports the total number of sends and the deepest backlog seen.
func (q *Queue[T]) Stats() (sent uint32, highWater int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.sent, q.max
}

// caller holds lock
func (q *Queue[T]) popLocked() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	// Reclaim the consumed prefix once it dominates the slice.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v, true
}
