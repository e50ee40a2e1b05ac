package shutdown

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestNewHandler(t *testing.T) {
	h := NewHandler(5 * time.Second)
	if h == nil {
		t.Fatal("NewHandler returned nil")
	}
	if h.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", h.timeout)
	}
}

func TestHandler_Trigger_HookOrder(t *testing.T) {
	h := NewHandler(5 * time.Second)

	var mu sync.Mutex
	callOrder := make([]int, 0)

	// Registered 1, 2, 3 - must run 3, 2, 1.
	for i := 1; i <= 3; i++ {
		i := i
		h.OnShutdown(func(ctx context.Context) error {
			mu.Lock()
			callOrder = append(callOrder, i)
			mu.Unlock()
			return nil
		})
	}

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait() }()

	h.Trigger(nil)

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(callOrder) != 3 || callOrder[0] != 3 || callOrder[1] != 2 || callOrder[2] != 1 {
		t.Errorf("hooks called in order %v, want [3 2 1]", callOrder)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed after Wait completes")
	}
}

func TestHandler_Trigger_Cause(t *testing.T) {
	h := NewHandler(time.Second)
	cause := errors.New("bind failed")

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait() }()

	h.Trigger(cause)
	h.Trigger(errors.New("ignored")) // second trigger is a no-op

	select {
	case err := <-errCh:
		if !errors.Is(err, cause) {
			t.Errorf("Wait() error = %v, want %v", err, cause)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete")
	}
}

func TestHandler_HookError(t *testing.T) {
	h := NewHandler(time.Second)
	hookErr := errors.New("hook error")

	h.OnShutdown(func(ctx context.Context) error { return nil })
	h.OnShutdown(func(ctx context.Context) error { return hookErr })

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait() }()

	h.Trigger(nil)

	select {
	case err := <-errCh:
		if !errors.Is(err, hookErr) {
			t.Errorf("Wait() error = %v, want %v", err, hookErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete")
	}
}

func TestHandler_Wait_WithSignal(t *testing.T) {
	h := NewHandler(5 * time.Second)

	ran := make(chan struct{})
	h.OnShutdown(func(ctx context.Context) error {
		close(ran)
		return nil
	})

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait() }()

	// Give Wait time to install the signal handler.
	time.Sleep(50 * time.Millisecond)
	syscall.Kill(syscall.Getpid(), syscall.SIGINT)

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete after signal")
	}

	select {
	case <-ran:
	default:
		t.Error("shutdown hook did not run")
	}
}

func TestHandler_ConcurrentOnShutdown(t *testing.T) {
	h := NewHandler(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown(func(ctx context.Context) error { return nil })
		}()
	}
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.hooks) != 10 {
		t.Errorf("expected 10 hooks, got %d", len(h.hooks))
	}
}
