// Package fetch projects asynchronous remote calls into a
// loading/data/error triple a view can render. Results arriving after
// a newer request for the same fetcher has been issued are discarded,
// so a slow response can never overwrite fresher state.
package fetch

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Result is the view projection of one fetch.
type Result[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// Fetcher owns the result of one logical query (a product list, a
// search, a report). Each fetcher's result has exactly one owner; a
// new Fetch supersedes the previous one, cancelling its context
// best-effort.
type Fetcher[T any] struct {
	mu     sync.Mutex
	token  uuid.UUID
	cancel context.CancelFunc
	result Result[T]

	onUpdate func(Result[T])
}

// New creates a fetcher. onUpdate, when non-nil, is invoked after every
// result change (loading start, completion, discard never notifies).
func New[T any](onUpdate func(Result[T])) *Fetcher[T] {
	return &Fetcher[T]{onUpdate: onUpdate}
}

// Fetch starts load asynchronously. Any in-flight request for this
// fetcher is superseded: its context is cancelled and its result, if
// it arrives anyway, is dropped.
func (f *Fetcher[T]) Fetch(ctx context.Context, load func(context.Context) (T, error)) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	token := uuid.New()
	f.token = token
	f.result.Loading = true
	f.notifyLocked()
	f.mu.Unlock()

	go func() {
		data, err := load(ctx)
		cancel()

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.token != token {
			// A newer request superseded this one; stale result.
			return
		}
		f.result = Result[T]{Data: data, Err: err}
		f.notifyLocked()
	}()
}

// Result returns the current projection.
func (f *Fetcher[T]) Result() Result[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Cancel aborts any in-flight request without starting a new one.
func (f *Fetcher[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.token = uuid.UUID{}
	f.result.Loading = false
}

func (f *Fetcher[T]) notifyLocked() {
	if f.onUpdate != nil {
		f.onUpdate(f.result)
	}
}
