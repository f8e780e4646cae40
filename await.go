package healthkit

import (
	"context"
	"sync"
)

type outcome[T any] struct {
	value T
	err   error
}

// await starts a callback-based platform call and suspends until the callback
// fires. The callback resumes the caller exactly once; later invocations are
// ignored. Cancelling ctx stops the wait but not the platform work.
func await[T any](ctx context.Context, start func(resume func(T, error)) error) (T, error) {
	var zero T
	done := make(chan outcome[T], 1)
	var once sync.Once
	resume := func(value T, err error) {
		once.Do(func() {
			done <- outcome[T]{value: value, err: err}
		})
	}
	if err := start(resume); err != nil {
		return zero, err
	}
	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
