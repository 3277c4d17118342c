package container

import "container/heap"

// sequence is the ordering discipline behind an Adapter. Implementations
// are not synchronized; the owning Adapter holds its mutex around every
// call. All pop paths go through the single pop method so that the
// "current" element is defined exactly once per discipline.
type sequence[T any] interface {
	push(v T)
	pop() T
	peek() T
	len() int
	clone() sequence[T]
}

// fifoSequence is the queue discipline: current = oldest inserted.
type fifoSequence[T any] struct {
	items []T
}

func (s *fifoSequence[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *fifoSequence[T]) pop() T {
	v := s.items[0]
	var zero T
	s.items[0] = zero // release the slot for GC
	s.items = s.items[1:]
	return v
}

func (s *fifoSequence[T]) peek() T {
	return s.items[0]
}

func (s *fifoSequence[T]) len() int {
	return len(s.items)
}

func (s *fifoSequence[T]) clone() sequence[T] {
	items := make([]T, len(s.items))
	copy(items, s.items)
	return &fifoSequence[T]{items: items}
}

// lifoSequence is the stack discipline: current = most recently inserted.
type lifoSequence[T any] struct {
	items []T
}

func (s *lifoSequence[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *lifoSequence[T]) pop() T {
	n := len(s.items) - 1
	v := s.items[n]
	var zero T
	s.items[n] = zero
	s.items = s.items[:n]
	return v
}

func (s *lifoSequence[T]) peek() T {
	return s.items[len(s.items)-1]
}

func (s *lifoSequence[T]) len() int {
	return len(s.items)
}

func (s *lifoSequence[T]) clone() sequence[T] {
	items := make([]T, len(s.items))
	copy(items, s.items)
	return &lifoSequence[T]{items: items}
}

// elementHeap adapts a comparator to heap.Interface (internal use)
type elementHeap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// Len implements heap.Interface
func (h *elementHeap[T]) Len() int { return len(h.items) }

// Less implements heap.Interface - less(a, b) reports whether a pops before b
func (h *elementHeap[T]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }

// Swap implements heap.Interface
func (h *elementHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

// Push implements heap.Interface
func (h *elementHeap[T]) Push(x interface{}) {
	h.items = append(h.items, x.(T))
}

// Pop implements heap.Interface
func (h *elementHeap[T]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero
	h.items = old[:n-1]
	return item
}

// prioritySequence is the priority discipline: current = extremal element
// per the comparator. Comparison reads stored values without consuming them.
type prioritySequence[T any] struct {
	heap elementHeap[T]
}

func newPrioritySequence[T any](less func(a, b T) bool) *prioritySequence[T] {
	return &prioritySequence[T]{heap: elementHeap[T]{less: less}}
}

func (s *prioritySequence[T]) push(v T) {
	heap.Push(&s.heap, v)
}

func (s *prioritySequence[T]) pop() T {
	return heap.Pop(&s.heap).(T)
}

func (s *prioritySequence[T]) peek() T {
	return s.heap.items[0]
}

func (s *prioritySequence[T]) len() int {
	return len(s.heap.items)
}

func (s *prioritySequence[T]) clone() sequence[T] {
	items := make([]T, len(s.heap.items))
	copy(items, s.heap.items)
	return &prioritySequence[T]{heap: elementHeap[T]{items: items, less: s.heap.less}}
}
