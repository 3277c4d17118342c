package worker

import (
	"context"
	"fmt"

	"github.com/jzx17/goconduit/pkg/container"
	"github.com/jzx17/goconduit/pkg/types"
)

// ConsumerConfig defines configuration for a Consumer
type ConsumerConfig struct {
	// Name is the diagnostic label (defaults to "consumer")
	Name string

	// ErrorHandler is the diagnostic sink for worker faults (optional)
	ErrorHandler types.ErrorHandler

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// DefaultConsumerConfig returns default configuration
func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Name:  "consumer",
		Clock: types.NewRealClock(),
	}
}

// Consumer pops elements from a shared adapter while its worker is enabled
// and invokes the handler with each one. The handler runs on the worker
// goroutine, outside any lock; a handler that blocks indefinitely stalls
// that worker's disable and shutdown.
type Consumer[T any] struct {
	*Controller

	shared  *container.Adapter[T]
	handler func(T)
}

// NewConsumer creates a Consumer draining the shared adapter and starts
// its control goroutine. The Consumer references the shared adapter; it
// does not own it.
func NewConsumer[T any](shared *container.Adapter[T], handler func(T), config *ConsumerConfig) (*Consumer[T], error) {
	if shared == nil {
		return nil, fmt.Errorf("shared adapter cannot be nil")
	}
	if handler == nil {
		return nil, types.ErrNilHandler
	}
	if config == nil {
		config = DefaultConsumerConfig()
	}
	name := config.Name
	if name == "" {
		name = "consumer"
	}

	c := &Consumer[T]{
		shared:  shared,
		handler: handler,
	}

	ctrl, err := NewController(c.consumeOne, &ControllerConfig{
		Name:         name,
		ErrorHandler: config.ErrorHandler,
		Clock:        config.Clock,
	})
	if err != nil {
		return nil, err
	}
	c.Controller = ctrl

	return c, nil
}

// consumeOne is the worker policy: wait for one element, then hand it to
// the handler. A handler panic is recovered at the worker boundary and
// reported; the worker keeps running.
func (c *Consumer[T]) consumeOne(ctx context.Context) error {
	v, err := c.shared.WaitAndPop(ctx)
	if err != nil {
		return err
	}

	c.handler(v)
	return nil
}
