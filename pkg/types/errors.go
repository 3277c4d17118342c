// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrEmptyContainer indicates a pop from an empty adapter
	ErrEmptyContainer = errors.New("container is empty")

	// ErrControllerClosed indicates the controller has been shut down
	ErrControllerClosed = errors.New("controller is closed")

	// ErrNilHandler indicates a missing element handler
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilComparator indicates a missing priority comparator
	ErrNilComparator = errors.New("comparator cannot be nil")

	// ErrStopWork signals a work function wants its worker to stop.
	// It is not reported as a fault.
	ErrStopWork = errors.New("stop work")
)

// ErrorHandler defines an error handling function. It is the diagnostic
// sink for faults caught at goroutine boundaries and must not panic;
// a panic from a handler is recovered and discarded.
type ErrorHandler func(error) error

// WorkerError represents an error caught at a worker or control
// goroutine boundary
type WorkerError struct {
	// Operation is the name of the operation where the error occurred
	Operation string

	// Worker is the diagnostic name of the owning controller
	Worker string

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker error in %s/%s: %v", e.Worker, e.Operation, e.Cause)
}

// Unwrap returns the underlying error
func (e *WorkerError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *WorkerError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewWorkerError creates a new worker error
func NewWorkerError(worker, operation string, cause error) *WorkerError {
	return &WorkerError{
		Operation: operation,
		Worker:    worker,
		Cause:     cause,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *WorkerError) WithContext(key string, value interface{}) *WorkerError {
	e.Context[key] = value
	return e
}
