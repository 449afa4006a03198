package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherRunsTasks(t *testing.T) {
	d := NewDispatcher(2, 16, testLogger())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		d.Enqueue("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	d.Close()

	assert.Equal(t, int32(10), ran.Load())
}

func TestDispatcherFailureDoesNotStopWorkers(t *testing.T) {
	d := NewDispatcher(1, 16, testLogger())

	var ran atomic.Int32
	d.Enqueue("boom", func(ctx context.Context) error {
		return errors.New("smtp unreachable")
	})
	d.Enqueue("after", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	d.Close()

	assert.Equal(t, int32(1), ran.Load())
}

func TestDispatcherTaskGetsDeadline(t *testing.T) {
	d := NewDispatcher(1, 1, testLogger())

	deadlineSet := make(chan bool, 1)
	d.Enqueue("deadline", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		deadlineSet <- ok
		return nil
	})

	select {
	case ok := <-deadlineSet:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
	d.Close()
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	d := NewDispatcher(1, 1, testLogger())

	block := make(chan struct{})
	d.Enqueue("blocker", func(ctx context.Context) error {
		<-block
		return nil
	})

	// fill the queue, then overflow; Enqueue must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			d.Enqueue("overflow", func(ctx context.Context) error { return nil })
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(block)
	d.Close()
}
