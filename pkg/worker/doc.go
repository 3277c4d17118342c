/*
Package worker provides remotely controllable producer and consumer workers
built on a shared command-driven lifecycle controller.

# Overview

A Controller owns one background worker goroutine that can be enabled,
disabled and shut down from any goroutine without losing in-flight work or
leaking goroutines:
- EnableWorker/DisableWorker are asynchronous requests, queued as Commands
- a dedicated control goroutine processes commands strictly in submission
  order, so concurrent lifecycle calls are serialized without ad hoc locking
- at most one worker goroutine exists per Controller; disable and shutdown
  fully join it before the transition is reported complete
- faults (errors or panics) inside the worker or a command handler are
  caught at the goroutine boundary, reported to the configured
  types.ErrorHandler, and never propagate to client goroutines

The worker policy is a plain WorkFunc value rather than a subclass:
Producer and Consumer are thin specializations that supply their own.

## Producer

Producer queues element batches (Push) into a private FIFO adapter and,
while enabled, drains them in order into a shared container.Adapter.
Batches accumulate while the worker is disabled and are delivered once it
is re-enabled.

## Consumer

Consumer pops elements from the shared adapter while enabled and invokes a
caller-supplied handler with each one on the worker goroutine.

# Usage

	shared, _ := container.NewPriorityQueue(func(a, b int) bool { return a > b })

	producer, _ := worker.NewProducer(shared, nil)
	consumer, _ := worker.NewConsumer(shared, func(v int) {
		fmt.Println("consumed", v)
	}, nil)
	defer producer.Close()
	defer consumer.Close()

	producer.EnableWorker()
	consumer.EnableWorker()
	producer.Push([]int{1, 2, 3, 4, 5, 6})

Close issues a shutdown command and blocks until the control goroutine has
stopped any running worker and exited.
*/
package worker
