/*
Package container provides thread-safe sequential containers shared between
concurrent producers and consumers.

# Overview

An Adapter wraps one of three ordering disciplines behind a single
synchronized interface:
- FIFO queue (NewQueue): oldest element pops first
- LIFO stack (NewStack): newest element pops first
- Priority queue (NewPriorityQueue): comparator-extremal element pops first

All operations are safe for concurrent use. Push never blocks and carries no
bound; WaitAndPop blocks until an element is available or the context is
done. Push and PushAndNotify differ only in whether one blocked WaitAndPop
caller is woken, so producers feeding polling consumers can skip the
signaling cost.

# Semantics

The "current" element (the candidate for removal) is defined once per
discipline and shared by WaitAndPop, TryPop and Pop. Pop differs from TryPop
only in reporting emptiness as types.ErrEmptyContainer instead of a boolean.

Clone copies the elements under the source's lock; Drain transfers them out,
leaving the source empty; Swap exchanges two adapters' contents while taking
both locks in a fixed global order.

# Usage

	shared, err := container.NewPriorityQueue(func(a, b int) bool { return a > b })
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		for _, v := range []int{3, 1, 4} {
			shared.PushAndNotify(v)
		}
	}()

	v, err := shared.WaitAndPop(context.Background()) // 4 once all three arrive
*/
package container
