package worker

import (
	"context"
	"fmt"

	"github.com/jzx17/goconduit/pkg/container"
	"github.com/jzx17/goconduit/pkg/types"
)

// ProducerConfig defines configuration for a Producer
type ProducerConfig struct {
	// Name is the diagnostic label (defaults to "producer")
	Name string

	// NotifyOnPush selects the shared adapter's notify path so blocking
	// consumers are woken per element. Disable it only when every consumer
	// polls.
	NotifyOnPush bool

	// ErrorHandler is the diagnostic sink for worker faults (optional)
	ErrorHandler types.ErrorHandler

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// DefaultProducerConfig returns default configuration
func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Name:         "producer",
		NotifyOnPush: true,
		Clock:        types.NewRealClock(),
	}
}

// Producer drains queued batches into a shared adapter while its worker is
// enabled. Batches submitted with Push accumulate regardless of worker
// state, so nothing is dropped across disable/enable cycles; a batch
// pushed before the worker is enabled is drained once it is.
type Producer[T any] struct {
	*Controller

	shared  *container.Adapter[T]
	batches *container.Adapter[[]T]
	notify  bool
}

// NewProducer creates a Producer feeding the shared adapter and starts its
// control goroutine. The Producer references the shared adapter; it does
// not own it.
func NewProducer[T any](shared *container.Adapter[T], config *ProducerConfig) (*Producer[T], error) {
	if shared == nil {
		return nil, fmt.Errorf("shared adapter cannot be nil")
	}
	if config == nil {
		config = DefaultProducerConfig()
	}
	name := config.Name
	if name == "" {
		name = "producer"
	}

	p := &Producer[T]{
		shared:  shared,
		batches: container.NewQueue[[]T](),
		notify:  config.NotifyOnPush,
	}

	ctrl, err := NewController(p.drainBatch, &ControllerConfig{
		Name:         name,
		ErrorHandler: config.ErrorHandler,
		Clock:        config.Clock,
	})
	if err != nil {
		return nil, err
	}
	p.Controller = ctrl

	return p, nil
}

// Push enqueues a batch for the worker to drain. It never blocks and is
// independent of whether the worker is currently enabled. The batch is
// copied; the caller keeps ownership of items.
func (p *Producer[T]) Push(items []T) {
	batch := make([]T, len(items))
	copy(batch, items)
	p.batches.PushAndNotify(batch)
}

// Pending returns the number of queued batches not yet drained
func (p *Producer[T]) Pending() int {
	return p.batches.Len()
}

// drainBatch is the worker policy: wait for one batch, then push every
// element of it, in order, into the shared adapter. A batch already
// dequeued is drained completely even if a stop request arrives meanwhile.
func (p *Producer[T]) drainBatch(ctx context.Context) error {
	batch, err := p.batches.WaitAndPop(ctx)
	if err != nil {
		return err
	}

	for _, v := range batch {
		if p.notify {
			p.shared.PushAndNotify(v)
		} else {
			p.shared.Push(v)
		}
	}
	return nil
}
