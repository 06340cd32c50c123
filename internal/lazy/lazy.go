// Package lazy provides a value that is computed once on first use and
// reused for the lifetime of the process.
package lazy

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// State is the lifecycle state of a Value
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

const flightKey = "value"

// Value holds the result of a loader that runs at most once successfully.
// Callers arriving while a load is in flight wait for that load and share its
// result, success or failure. A failed load leaves the Value retryable.
type Value[T any] struct {
	load  func() (T, error)
	group singleflight.Group

	mu    sync.RWMutex
	state State
	value T
}

// New creates a Value backed by load
func New[T any](load func() (T, error)) *Value[T] {
	return &Value[T]{load: load}
}

// Get returns the loaded value, running the loader if no load has succeeded yet
func (v *Value[T]) Get() (T, error) {
	v.mu.RLock()
	if v.state == Ready {
		defer v.mu.RUnlock()
		return v.value, nil
	}
	v.mu.RUnlock()

	result, err, _ := v.group.Do(flightKey, func() (interface{}, error) {
		v.mu.Lock()
		// a previous flight may have finished between our read and this one starting
		if v.state == Ready {
			v.mu.Unlock()
			return v.value, nil
		}
		v.state = Loading
		v.mu.Unlock()

		loaded, err := v.run()

		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.state = Failed
			return nil, err
		}
		v.value = loaded
		v.state = Ready
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	value, _ := result.(T)
	return value, nil
}

// run calls the loader and marks the Value failed if it panics, so a later
// Get can retry. The panic is passed on to the caller.
func (v *Value[T]) run() (T, error) {
	defer func() {
		if r := recover(); r != nil {
			v.mu.Lock()
			v.state = Failed
			v.mu.Unlock()
			panic(r)
		}
	}()
	return v.load()
}

// State reports where the Value is in its lifecycle
func (v *Value[T]) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}
