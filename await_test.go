package healthkit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestAwaitResumesOnce(t *testing.T) {
	got, err := await(context.Background(), func(resume func(int, error)) error {
		resume(1, nil)
		resume(2, errors.New("second"))
		return nil
	})
	if err != nil || got != 1 {
		t.Fatalf("expected first resume to win, got %d, %v", got, err)
	}
}

func TestAwaitResumeFromAnotherGoroutine(t *testing.T) {
	var wg sync.WaitGroup
	got, err := await(context.Background(), func(resume func(string, error)) error {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resume("done", nil)
			}()
		}
		return nil
	})
	wg.Wait()
	if err != nil || got != "done" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
}

func TestAwaitStartError(t *testing.T) {
	boom := errors.New("refused")
	_, err := await(context.Background(), func(func(int, error)) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected start error, got %v", err)
	}
}

func TestAwaitCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var late func(int, error)
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := await(ctx, func(resume func(int, error)) error {
		late = resume
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// A completion arriving after the caller left must not block.
	late(1, nil)
	late(2, nil)
}
