package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/goconduit/pkg/container"
	"github.com/jzx17/goconduit/pkg/types"
)

// Command is an asynchronous lifecycle request, submitted by a client and
// consumed exactly once by the control goroutine
type Command uint8

const (
	// CommandEnable requests that a worker goroutine begin running
	CommandEnable Command = iota
	// CommandDisable requests that the running worker stop and be joined
	CommandDisable
	// CommandShutdown stops any worker and terminates the control goroutine
	CommandShutdown
)

// String returns the string representation of Command
func (c Command) String() string {
	switch c {
	case CommandEnable:
		return "enable"
	case CommandDisable:
		return "disable"
	case CommandShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ControllerState defines the state of a Controller
type ControllerState int32

const (
	// StateIdle means no worker goroutine is running
	StateIdle ControllerState = iota
	// StateRunning means a worker goroutine is running
	StateRunning
	// StateClosed means the controller has shut down and accepts no commands
	StateClosed
)

// String returns the string representation of ControllerState
func (cs ControllerState) String() string {
	switch cs {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// WorkFunc performs one unit of worker work. Blocking calls inside it must
// honor ctx, which is cancelled when the worker is disabled or shut down.
// Returning nil continues the loop; returning types.ErrStopWork ends the
// worker cleanly; any other error is reported as a fault and the loop
// continues.
type WorkFunc func(ctx context.Context) error

// ControllerConfig defines configuration for a Controller
type ControllerConfig struct {
	// Name is the diagnostic label attached to reported faults
	Name string

	// ErrorHandler is the diagnostic sink for faults caught at goroutine
	// boundaries (optional)
	ErrorHandler types.ErrorHandler

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// DefaultControllerConfig returns default configuration
func DefaultControllerConfig() *ControllerConfig {
	return &ControllerConfig{
		Name:  "worker",
		Clock: types.NewRealClock(),
	}
}

// Controller owns one on/off worker goroutine and the control goroutine
// that manages it. Lifecycle requests are queued as Commands and processed
// strictly in submission order by the control goroutine, so concurrent
// Enable/Disable calls from multiple goroutines are serialized without the
// caller ever observing a half-started or half-stopped worker. At most one
// worker goroutine exists per Controller at any time.
//
// The control goroutine starts when the Controller is constructed and runs
// until Close.
type Controller struct {
	name     string
	work     WorkFunc
	commands *container.Adapter[Command]
	clock    types.Clock

	// worker goroutine handles, owned by the control goroutine
	workerCancel context.CancelFunc
	workerDone   chan struct{}

	// control goroutine handshake
	controlDone chan struct{}
	closeOnce   sync.Once
	closed      int32

	state int32 // atomic ControllerState

	// statistics
	totalProcessed int64
	totalFailed    int64
	lastWorkTime   int64 // Unix nanosecond timestamp

	// error handling
	errorHandler types.ErrorHandler

	// synchronization
	mu sync.RWMutex
}

// NewController creates a Controller running work on its worker goroutine
// and starts the control goroutine
func NewController(work WorkFunc, config *ControllerConfig) (*Controller, error) {
	if work == nil {
		return nil, fmt.Errorf("work function cannot be nil")
	}
	if config == nil {
		config = DefaultControllerConfig()
	}
	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}
	name := config.Name
	if name == "" {
		name = "worker"
	}

	c := &Controller{
		name:         name,
		work:         work,
		commands:     container.NewQueue[Command](),
		clock:        config.Clock,
		controlDone:  make(chan struct{}),
		state:        int32(StateIdle),
		errorHandler: config.ErrorHandler,
	}

	go c.controlLoop()

	return c, nil
}

// Name returns the controller's diagnostic name
func (c *Controller) Name() string {
	return c.name
}

// State returns the current controller state
func (c *Controller) State() ControllerState {
	return ControllerState(atomic.LoadInt32(&c.state))
}

// SetErrorHandler sets the diagnostic sink
func (c *Controller) SetErrorHandler(handler types.ErrorHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorHandler = handler
}

// EnableWorker asynchronously requests that a worker goroutine begin
// running. It returns immediately; the worker is started by the control
// goroutine. Enabling an already-running worker is a no-op.
func (c *Controller) EnableWorker() error {
	if atomic.LoadInt32(&c.closed) != 0 {
		return types.ErrControllerClosed
	}
	c.commands.PushAndNotify(CommandEnable)
	return nil
}

// DisableWorker asynchronously requests that the running worker stop. It
// returns immediately; the control goroutine cancels the worker and joins
// it before reporting the transition complete. Disabling with no running
// worker is a no-op.
func (c *Controller) DisableWorker() error {
	if atomic.LoadInt32(&c.closed) != 0 {
		return types.ErrControllerClosed
	}
	c.commands.PushAndNotify(CommandDisable)
	return nil
}

// Close stops any running worker, terminates the control goroutine and
// blocks until both have been joined. Close is idempotent; no commands are
// accepted afterwards.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		c.commands.PushAndNotify(CommandShutdown)
	})
	<-c.controlDone
	return nil
}

// controlLoop is the control goroutine: it pops commands in submission
// order and applies them until shutdown
func (c *Controller) controlLoop() {
	defer close(c.controlDone)

	for {
		cmd, err := c.commands.WaitAndPop(context.Background())
		if err != nil {
			return
		}
		if c.dispatch(cmd) {
			atomic.StoreInt32(&c.state, int32(StateClosed))
			return
		}
	}
}

// dispatch applies one command, reporting whether the control loop should
// exit. A panic inside a handler is caught here so the loop resumes and a
// pending shutdown still completes.
func (c *Controller) dispatch(cmd Command) (shutdown bool) {
	defer func() {
		if r := recover(); r != nil {
			c.reportError(recoveredError(c.name, "control", r))
		}
	}()

	// A worker that exited on its own (ErrStopWork or a startup fault)
	// must not leave the controller thinking it is still running.
	c.reapWorker()

	switch cmd {
	case CommandEnable:
		c.startWorker()
	case CommandDisable:
		c.stopWorker()
	case CommandShutdown:
		shutdown = true
		c.stopWorker()
	}
	return shutdown
}

// reapWorker clears worker state if the worker goroutine has already
// exited without a Disable request
func (c *Controller) reapWorker() {
	if c.workerDone == nil {
		return
	}
	select {
	case <-c.workerDone:
		c.workerCancel()
		c.workerDone = nil
		c.workerCancel = nil
		atomic.StoreInt32(&c.state, int32(StateIdle))
	default:
	}
}

// startWorker spawns the worker goroutine unless one is already running
func (c *Controller) startWorker() {
	if c.workerDone != nil {
		// already running
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.workerCancel = cancel
	c.workerDone = done
	atomic.StoreInt32(&c.state, int32(StateRunning))

	go c.workerLoop(ctx, done)
}

// stopWorker cancels the worker goroutine and joins it fully before
// returning. With no running worker it is a no-op.
func (c *Controller) stopWorker() {
	if c.workerDone == nil {
		// nothing to disable
		return
	}

	c.workerCancel()
	<-c.workerDone

	c.workerDone = nil
	c.workerCancel = nil
	atomic.StoreInt32(&c.state, int32(StateIdle))
}

// workerLoop runs units of work until the context is cancelled or the
// work function asks to stop
func (c *Controller) workerLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}

		err := c.runUnit(ctx)
		switch {
		case err == nil:
			atomic.AddInt64(&c.totalProcessed, 1)
			atomic.StoreInt64(&c.lastWorkTime, c.clock.Now().UnixNano())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return
		case errors.Is(err, types.ErrStopWork):
			return
		default:
			// a fault in one unit of work does not stop the worker
			atomic.AddInt64(&c.totalFailed, 1)
			c.reportError(err)
		}
	}
}

// runUnit executes one unit of work with panic recovery
func (c *Controller) runUnit(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(c.name, "work", r)
		}
	}()

	return c.work(ctx)
}

// recoveredError converts a recovered panic value into a WorkerError with
// stack trace context
func recoveredError(worker, operation string, r interface{}) error {
	var buf [4096]byte
	n := runtime.Stack(buf[:], false)

	var cause error
	switch v := r.(type) {
	case error:
		cause = v
	case string:
		cause = fmt.Errorf("panic: %s", v)
	default:
		cause = fmt.Errorf("panic: %v", v)
	}

	werr := types.NewWorkerError(worker, operation, cause)
	werr.WithContext("stack_trace", string(buf[:n]))
	return werr
}

// reportError hands a fault to the diagnostic sink, best effort. The sink
// must not panic; if it does, the panic is recovered and discarded.
func (c *Controller) reportError(err error) {
	c.mu.RLock()
	handler := c.errorHandler
	c.mu.RUnlock()

	if handler == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	_ = handler(err)
}

// Stats gets controller statistics
func (c *Controller) Stats() ControllerStats {
	return ControllerStats{
		Name:           c.name,
		State:          c.State(),
		TotalProcessed: atomic.LoadInt64(&c.totalProcessed),
		TotalFailed:    atomic.LoadInt64(&c.totalFailed),
		LastWorkTime:   time.Unix(0, atomic.LoadInt64(&c.lastWorkTime)),
	}
}

// ControllerStats defines controller statistics
type ControllerStats struct {
	Name           string
	State          ControllerState
	TotalProcessed int64
	TotalFailed    int64
	LastWorkTime   time.Time
}

// IsRunning checks if a worker goroutine is running
func (cs ControllerStats) IsRunning() bool {
	return cs.State == StateRunning
}

// GetSuccessRate gets the success rate
func (cs ControllerStats) GetSuccessRate() float64 {
	total := cs.TotalProcessed + cs.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(cs.TotalProcessed) / float64(total)
}
