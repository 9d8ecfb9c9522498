// Package queue provides the ordered, arbitrary-removal buffer the
// mailbox scans during selective receive. It is a thin generalization of
// the teacher's deque-backed mailbox queue: instead of a fixed element
// type wired to one worker, it is generic over any element type and
// exposes indexed removal so a selective receive can pull a match out of
// the middle of the queue without disturbing the relative order of the
// rest.
package queue

import "github.com/gammazero/deque"

// Queue is an ordered FIFO buffer supporting indexed removal.
type Queue[T any] struct {
	d deque.Deque[T]
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// PushBack appends v to the tail of the queue.
func (q *Queue[T]) PushBack(v T) {
	q.d.PushBack(v)
}

// Len returns the number of elements currently queued.
func (q *Queue[T]) Len() int {
	return q.d.Len()
}

// At returns the element at position i, where 0 is the head.
func (q *Queue[T]) At(i int) T {
	return q.d.At(i)
}

// RemoveAt removes and returns the element at position i, preserving the
// relative order of the remaining elements.
func (q *Queue[T]) RemoveAt(i int) T {
	return q.d.Remove(i)
}
