// Package dbtest provides backends for exercising persistence failures.
package dbtest

import (
	"context"
	"errors"
	"sync"

	"github.com/javiermolinar/timetable/internal/db"
)

// ErrInjected is returned by a Flaky backend while failures are switched on.
var ErrInjected = errors.New("injected storage failure")

// Flaky wraps an in-memory backend and fails reads or writes on demand.
type Flaky struct {
	*db.Memory

	mu       sync.Mutex
	failGet  bool
	failSet  bool
	setCalls int
}

// NewFlaky returns a Flaky backend that starts out healthy.
func NewFlaky() *Flaky {
	return &Flaky{Memory: db.NewMemory()}
}

// FailReads toggles Get failures.
func (f *Flaky) FailReads(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet = on
}

// FailWrites toggles Set failures.
func (f *Flaky) FailWrites(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet = on
}

// SetCalls returns how many times Set has been called, failed calls included.
func (f *Flaky) SetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

// Get fails with ErrInjected while reads are switched off.
func (f *Flaky) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return f.Memory.Get(ctx, key)
}

// Set fails with ErrInjected while writes are switched off.
func (f *Flaky) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.setCalls++
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.Memory.Set(ctx, key, value)
}
