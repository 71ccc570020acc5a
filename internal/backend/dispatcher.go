package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Request is one unit of background work. Generation is stamped by the
// caller and echoed back unchanged in the Result.
type Request struct {
	ID         string
	Key        Key
	Generation uint64
	Task       Task
}

// Result carries the outcome of exactly one Request.
type Result struct {
	ID         string
	Key        Key
	Generation uint64
	Payload    interface{}
	Err        error
	Elapsed    time.Duration
}

// Options tunes a Dispatcher.
type Options struct {
	// Timeout bounds every task. Zero disables the bound.
	Timeout time.Duration
	// Throttle spaces successive provider calls.
	Throttle time.Duration
}

// Dispatcher runs requests on their own goroutines and queues results for
// the controller. Results are delivered in completion order.
type Dispatcher struct {
	provider Provider
	timeout  time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	results []Result
	ready   chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher bound to provider.
func NewDispatcher(provider Provider, opts Options) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		provider: provider,
		timeout:  opts.Timeout,
		throttle: newThrottle(opts.Throttle),
		ctx:      ctx,
		cancel:   cancel,
		ready:    make(chan struct{}, 1),
	}
}

// Spawn starts req in the background and returns its ID immediately. An ID
// is assigned when the request has none.
func (d *Dispatcher) Spawn(req Request) string {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	d.wg.Add(1)
	go d.run(req)
	return req.ID
}

// Ready is signalled whenever results are queued. It never closes.
func (d *Dispatcher) Ready() <-chan struct{} {
	return d.ready
}

// Drain returns all queued results in arrival order without blocking.
func (d *Dispatcher) Drain() []Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.results) == 0 {
		return nil
	}
	out := d.results
	d.results = nil
	return out
}

// Stop cancels all running tasks. Each still delivers a Result.
func (d *Dispatcher) Stop() {
	d.cancel()
}

// Wait blocks until every spawned task has delivered its result.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(req Request) {
	defer d.wg.Done()
	start := time.Now()
	payload, err := d.execute(req)
	d.deliver(Result{
		ID:         req.ID,
		Key:        req.Key,
		Generation: req.Generation,
		Payload:    payload,
		Err:        err,
		Elapsed:    time.Since(start),
	})
}

type outcome struct {
	payload interface{}
	err     error
}

// execute runs the task under the configured deadline. A provider call that
// ignores cancellation is abandoned once the deadline passes.
func (d *Dispatcher) execute(req Request) (interface{}, error) {
	if req.Task == nil {
		return nil, fmt.Errorf("%s: no task", req.Key)
	}
	ctx, cancel := d.ctx, context.CancelFunc(func() {})
	if d.timeout > 0 {
		ctx, cancel = context.WithTimeout(d.ctx, d.timeout)
	}
	defer cancel()

	if err := d.throttle.wait(ctx); err != nil {
		return nil, d.wrap(req.Key, err)
	}

	done := make(chan outcome, 1)
	go func() {
		payload, err := req.Task(ctx, d.provider)
		done <- outcome{payload: payload, err: err}
	}()
	select {
	case out := <-done:
		if out.err != nil {
			return nil, d.wrap(req.Key, out.err)
		}
		return out.payload, nil
	case <-ctx.Done():
		return nil, d.wrap(req.Key, ctx.Err())
	}
}

func (d *Dispatcher) wrap(key Key, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out after %s: %w", key.Kind, d.timeout, err)
	}
	return err
}

func (d *Dispatcher) deliver(res Result) {
	d.mu.Lock()
	d.results = append(d.results, res)
	d.mu.Unlock()
	select {
	case d.ready <- struct{}{}:
	default:
	}
}
