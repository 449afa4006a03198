// Package notify carries the best-effort side effects of order events:
// email, SMS and the background queue they run on. Failures here are
// logged and never reach the caller; the order mutation that triggered
// them is already committed.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const taskTimeout = 10 * time.Second

type task struct {
	name string
	run  func(ctx context.Context) error
}

// Dispatcher is a bounded worker pool for post-commit notification
// work. The HTTP response goes out before these tasks run.
type Dispatcher struct {
	tasks chan task
	wg    sync.WaitGroup
	log   *slog.Logger

	closeOnce sync.Once
}

func NewDispatcher(workers, queueSize int, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		tasks: make(chan task, queueSize),
		log:   log,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		if err := t.run(ctx); err != nil {
			d.log.Error("background task failed", "task", t.name, "error", err)
		}
		cancel()
	}
}

// Enqueue schedules a task. When the queue is full the task is dropped
// and logged rather than blocking the request path.
func (d *Dispatcher) Enqueue(name string, fn func(ctx context.Context) error) {
	select {
	case d.tasks <- task{name: name, run: fn}:
	default:
		d.log.Error("notification queue full, dropping task", "task", name)
	}
}

// Close drains the queue and waits for in-flight tasks.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}
