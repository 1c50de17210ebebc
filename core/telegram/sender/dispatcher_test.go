package sender

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestDispatcherDeliversInEnqueueOrder(t *testing.T) {
	d := NewDispatcher(Options{})
	defer d.Close()

	const jobs = 8
	var (
		mu    sync.Mutex
		order []int
	)
	done := make(chan struct{})

	for i := 0; i < jobs; i++ {
		i := i
		err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
			// Later jobs finish faster; order must still follow the queue.
			time.Sleep(time.Duration(jobs-i) * time.Millisecond)
			mu.Lock()
			order = append(order, i)
			if len(order) == jobs {
				close(done)
			}
			mu.Unlock()
			return nil
		})
		if err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, got := range order {
		if got != i {
			t.Fatalf("delivery order %v, job %d arrived at position %d", order, got, i)
		}
	}
}

func TestDispatcherEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(Options{})
	d.Close()

	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error { return nil })
	if err != ErrQueueClosed {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestDispatcherCloseDrainsQueuedJobs(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 16})

	var (
		mu  sync.Mutex
		ran int
	)
	const jobs = 10
	for i := 0; i < jobs; i++ {
		if err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if ran != jobs {
		t.Fatalf("expected %d jobs to run before Close returned, got %d", jobs, ran)
	}
}

func TestDispatcherCountsFailures(t *testing.T) {
	d := NewDispatcher(Options{MaxRetries: 0})

	boom := make(chan struct{})
	if err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		defer close(boom)
		return context.DeadlineExceeded
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-boom:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
	d.Close()

	if got := d.ErrorCount(); got != 1 {
		t.Fatalf("expected 1 failed job, got %d", got)
	}
}