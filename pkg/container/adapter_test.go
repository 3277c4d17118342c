package container

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/goconduit/pkg/types"
)

func maxFirst(a, b int) bool { return a > b }

func TestNewQueue_FIFOOrder(t *testing.T) {
	q := NewQueue[int]()
	assert.Equal(t, DisciplineFIFO, q.Discipline())

	for _, v := range []int{1, 2, 3} {
		q.Push(v)
	}

	for _, want := range []int{1, 2, 3} {
		got, err := q.WaitAndPop(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.True(t, q.IsEmpty())
}

func TestNewStack_LIFOOrder(t *testing.T) {
	s := NewStack[int]()
	assert.Equal(t, DisciplineLIFO, s.Discipline())

	for _, v := range []int{1, 2, 3} {
		s.Push(v)
	}

	for _, want := range []int{3, 2, 1} {
		got, ok := s.TryPop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestNewPriorityQueue_ComparatorOrder(t *testing.T) {
	pq, err := NewPriorityQueue(maxFirst, 3, 1, 4, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, DisciplinePriority, pq.Discipline())
	assert.Equal(t, 5, pq.Len())

	var got []int
	for !pq.IsEmpty() {
		v, err := pq.Pop()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{5, 4, 3, 1, 1}, got)
}

func TestNewPriorityQueue_NilComparator(t *testing.T) {
	_, err := NewPriorityQueue[int](nil)
	assert.ErrorIs(t, err, types.ErrNilComparator)
}

func TestAdapter_InitialElements(t *testing.T) {
	q := NewQueue(10, 20, 30)
	assert.Equal(t, 3, q.Len())

	v, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestTryPop_EmptyDoesNotBlock(t *testing.T) {
	q := NewQueue[string]()

	start := time.Now()
	v, ok := q.TryPop()
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Less(t, elapsed, 100*time.Millisecond)
}

func TestPop_EmptyReturnsError(t *testing.T) {
	q := NewQueue[int]()

	_, err := q.Pop()
	assert.ErrorIs(t, err, types.ErrEmptyContainer)
}

func TestPeek_DoesNotRemove(t *testing.T) {
	pq, err := NewPriorityQueue(maxFirst, 2, 7, 5)
	require.NoError(t, err)

	v, ok := pq.Peek()
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 3, pq.Len())

	// Peek and pop agree on the current element
	popped, err := pq.Pop()
	require.NoError(t, err)
	assert.Equal(t, v, popped)
}

func TestPeek_Empty(t *testing.T) {
	q := NewStack[int]()
	_, ok := q.Peek()
	assert.False(t, ok)
}

func TestWaitAndPop_PushBeforeWaitIsObserved(t *testing.T) {
	q := NewQueue[int]()
	q.Push(42)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := q.WaitAndPop(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestWaitAndPop_NotifyWakesWaiter(t *testing.T) {
	q := NewQueue[int]()

	result := make(chan int, 1)
	go func() {
		v, err := q.WaitAndPop(context.Background())
		if err == nil {
			result <- v
		}
	}()

	// Let the waiter block before signaling
	time.Sleep(20 * time.Millisecond)
	q.PushAndNotify(7)

	select {
	case v := <-result:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by PushAndNotify")
	}
}

func TestWaitAndPop_ContextCancellation(t *testing.T) {
	q := NewQueue[int]()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := q.WaitAndPop(ctx)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancellation did not wake the waiter")
	}
}

func TestWaitAndPop_AlreadyCancelled(t *testing.T) {
	q := NewQueue(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.WaitAndPop(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, q.Len())
}

func TestClone_Independence(t *testing.T) {
	pq, err := NewPriorityQueue(maxFirst, 3, 1, 4)
	require.NoError(t, err)

	clone := pq.Clone()
	pq.Push(9)

	assert.Equal(t, 4, pq.Len())
	assert.Equal(t, 3, clone.Len())

	// Clone keeps the discipline and comparator
	v, err := clone.Pop()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestDrain_PopOrderAndEmptySource(t *testing.T) {
	s := NewStack(1, 2, 3)

	got := s.Drain()
	assert.Equal(t, []int{3, 2, 1}, got)
	assert.True(t, s.IsEmpty())

	// Source stays usable after the move
	s.Push(4)
	v, ok := s.TryPop()
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestSwap_ExchangesContents(t *testing.T) {
	a := NewQueue(1, 2)
	b := NewQueue(3)

	a.Swap(b)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())

	v, _ := a.TryPop()
	assert.Equal(t, 3, v)
	v, _ = b.TryPop()
	assert.Equal(t, 1, v)
}

func TestSwap_Self(t *testing.T) {
	a := NewQueue(1, 2)
	a.Swap(a)
	assert.Equal(t, 2, a.Len())
}

func TestSwap_ConcurrentCrossSwapNoDeadlock(t *testing.T) {
	a := NewQueue(1, 2, 3)
	b := NewQueue(4, 5)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			a.Swap(b)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			b.Swap(a)
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent cross swap deadlocked")
	}

	assert.Equal(t, 5, a.Len()+b.Len())
}

func TestAdapter_ConcurrentProducersNoLossNoDuplication(t *testing.T) {
	const producers = 4
	const perProducer = 250

	q := NewQueue[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.PushAndNotify(p*perProducer + i)
			}
		}(p)
	}

	got := make([]int, 0, producers*perProducer)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for len(got) < producers*perProducer {
		v, err := q.WaitAndPop(ctx)
		require.NoError(t, err)
		got = append(got, v)
	}
	wg.Wait()

	assert.True(t, q.IsEmpty())

	// Exactly the pushed set, no loss or duplication; cross-producer order
	// is unconstrained.
	sort.Ints(got)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestDiscipline_String(t *testing.T) {
	assert.Equal(t, "fifo", DisciplineFIFO.String())
	assert.Equal(t, "lifo", DisciplineLIFO.String())
	assert.Equal(t, "priority", DisciplinePriority.String())
	assert.Equal(t, "unknown", Discipline(99).String())
}

func BenchmarkQueue_PushPop(b *testing.B) {
	q := NewQueue[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(i)
		_, _ = q.TryPop()
	}
}

func BenchmarkPriorityQueue_PushPop(b *testing.B) {
	pq, _ := NewPriorityQueue(maxFirst)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pq.Push(i)
		_, _ = pq.TryPop()
	}
}
