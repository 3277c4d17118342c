package container

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jzx17/goconduit/pkg/types"
)

// Discipline identifies the ordering discipline of an Adapter
type Discipline int32

const (
	// DisciplineFIFO pops the oldest inserted element first (queue)
	DisciplineFIFO Discipline = iota
	// DisciplineLIFO pops the most recently inserted element first (stack)
	DisciplineLIFO
	// DisciplinePriority pops the extremal element per the comparator
	DisciplinePriority
)

// String returns the string representation of Discipline
func (d Discipline) String() string {
	switch d {
	case DisciplineFIFO:
		return "fifo"
	case DisciplineLIFO:
		return "lifo"
	case DisciplinePriority:
		return "priority"
	default:
		return "unknown"
	}
}

// adapterSeq assigns each Adapter a creation-ordered identity, used to
// acquire two adapters' locks in a fixed global order during Swap.
var adapterSeq uint64

// Adapter is a thread-safe wrapper around a sequential ordering
// discipline, fixed at construction. All operations are internally
// synchronized; a condition variable signaled by PushAndNotify supports
// blocking consumption via WaitAndPop.
type Adapter[T any] struct {
	mu         sync.Mutex
	cond       *sync.Cond
	seq        sequence[T]
	discipline Discipline
	id         uint64
}

func newAdapter[T any](d Discipline, seq sequence[T], initial []T) *Adapter[T] {
	a := &Adapter[T]{
		seq:        seq,
		discipline: d,
		id:         atomic.AddUint64(&adapterSeq, 1),
	}
	a.cond = sync.NewCond(&a.mu)
	for _, v := range initial {
		seq.push(v)
	}
	return a
}

// NewQueue creates a FIFO adapter holding the initial elements, if any
func NewQueue[T any](initial ...T) *Adapter[T] {
	return newAdapter[T](DisciplineFIFO, &fifoSequence[T]{}, initial)
}

// NewStack creates a LIFO adapter holding the initial elements, if any
func NewStack[T any](initial ...T) *Adapter[T] {
	return newAdapter[T](DisciplineLIFO, &lifoSequence[T]{}, initial)
}

// NewPriorityQueue creates a priority adapter ordered by less, where
// less(a, b) reports whether a should pop before b. A max-first queue of
// ints uses func(a, b int) bool { return a > b }.
func NewPriorityQueue[T any](less func(a, b T) bool, initial ...T) (*Adapter[T], error) {
	if less == nil {
		return nil, types.ErrNilComparator
	}
	return newAdapter[T](DisciplinePriority, newPrioritySequence(less), initial), nil
}

// Discipline returns the adapter's ordering discipline
func (a *Adapter[T]) Discipline() Discipline {
	return a.discipline
}

// Push appends a value per the ordering discipline. It never blocks and
// does not wake blocked waiters; use PushAndNotify when a blocking
// consumer may be waiting.
func (a *Adapter[T]) Push(v T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq.push(v)
}

// PushAndNotify appends a value and wakes one goroutine blocked in
// WaitAndPop, if any
func (a *Adapter[T]) PushAndNotify(v T) {
	a.mu.Lock()
	a.seq.push(v)
	a.mu.Unlock()
	a.cond.Signal()
}

// WaitAndPop blocks until the adapter is non-empty, then removes and
// returns the current element. The wait is ended early when ctx is done,
// returning ctx.Err(). Pass context.Background() to wait indefinitely.
//
// A PushAndNotify that happens before the wait begins is observed by the
// wait; one that happens after wakes it.
func (a *Adapter[T]) WaitAndPop(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	// The lock round-trip before Broadcast serializes cancellation with a
	// waiter that has checked ctx but not yet released the mutex in Wait,
	// so the wakeup cannot be lost.
	stop := context.AfterFunc(ctx, func() {
		a.mu.Lock()
		a.mu.Unlock() //nolint:staticcheck // empty critical section is the ordering barrier
		a.cond.Broadcast()
	})
	defer stop()

	a.mu.Lock()
	defer a.mu.Unlock()
	for a.seq.len() == 0 {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		a.cond.Wait()
	}
	return a.seq.pop(), nil
}

// TryPop removes and returns the current element without blocking.
// It reports false when the adapter is empty.
func (a *Adapter[T]) TryPop() (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seq.len() == 0 {
		var zero T
		return zero, false
	}
	return a.seq.pop(), true
}

// Pop removes and returns the current element, or ErrEmptyContainer when
// the adapter is empty. Intended for callers that have established
// non-emptiness externally; prefer TryPop otherwise.
func (a *Adapter[T]) Pop() (T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seq.len() == 0 {
		var zero T
		return zero, types.ErrEmptyContainer
	}
	return a.seq.pop(), nil
}

// Peek returns the current element without removing it.
// It reports false when the adapter is empty.
func (a *Adapter[T]) Peek() (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seq.len() == 0 {
		var zero T
		return zero, false
	}
	return a.seq.peek(), true
}

// Len returns the number of queued elements
func (a *Adapter[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq.len()
}

// IsEmpty checks if the adapter is empty
func (a *Adapter[T]) IsEmpty() bool {
	return a.Len() == 0
}

// Clone deep-copies the adapter under the source's lock. The clone shares
// no state with the source and starts with no blocked waiters.
func (a *Adapter[T]) Clone() *Adapter[T] {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := &Adapter[T]{
		seq:        a.seq.clone(),
		discipline: a.discipline,
		id:         atomic.AddUint64(&adapterSeq, 1),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Drain removes and returns all elements in pop order, leaving the
// adapter valid and empty. This is the move analogue of Clone.
func (a *Adapter[T]) Drain() []T {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]T, 0, a.seq.len())
	for a.seq.len() > 0 {
		out = append(out, a.seq.pop())
	}
	return out
}

// Swap exchanges the underlying sequences of two adapters. Locks are
// acquired in creation order so that two goroutines swapping the same
// pair in opposite directions cannot deadlock. Both adapters must use
// the same ordering discipline.
func (a *Adapter[T]) Swap(other *Adapter[T]) {
	if a == other {
		return
	}
	first, second := a, other
	if first.id > second.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()
	a.seq, other.seq = other.seq, a.seq
}
