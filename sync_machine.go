package machine

import (
	"sync"

	"github.com/enetx/g"
)

// SyncMachine is a mutex-serialized facade over a Machine for callers that
// drive one machine from several goroutines. States still receive the inner
// Machine in Enter, so triggers fired from Enter do not take the lock again.
type SyncMachine[S, T comparable, C any] struct {
	m  *Machine[S, T, C]
	mu sync.RWMutex
}

// Sync returns a serialized facade over m. Configure m before sharing it.
func (m *Machine[S, T, C]) Sync() *SyncMachine[S, T, C] {
	return &SyncMachine[S, T, C]{m: m}
}

// Start is the thread-safe version of Machine.Start.
func (sm *SyncMachine[S, T, C]) Start() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Start()
}

// Stop is the thread-safe version of Machine.Stop.
func (sm *SyncMachine[S, T, C]) Stop() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Stop()
}

// Trigger is the thread-safe version of Machine.Trigger.
// The whole transition, including nested triggers, runs under the lock.
func (sm *SyncMachine[S, T, C]) Trigger(trigger T) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Trigger(trigger)
}

// Verify is the thread-safe version of Machine.Verify.
func (sm *SyncMachine[S, T, C]) Verify() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Verify()
}

// Current is the thread-safe version of Machine.Current.
func (sm *SyncMachine[S, T, C]) Current() g.Option[S] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Current()
}

// Context is the thread-safe version of Machine.Context.
// The context itself is not protected.
func (sm *SyncMachine[S, T, C]) Context() C {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Context()
}

// Running is the thread-safe version of Machine.Running.
func (sm *SyncMachine[S, T, C]) Running() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Running()
}

// History is the thread-safe version of Machine.History.
func (sm *SyncMachine[S, T, C]) History() g.Slice[S] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.History()
}

// ToDOT is the thread-safe version of Machine.ToDOT.
func (sm *SyncMachine[S, T, C]) ToDOT() g.String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.ToDOT()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// snapshots of the machine.
func (sm *SyncMachine[S, T, C]) MarshalJSON() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.MarshalJSON()
}
