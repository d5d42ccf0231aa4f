package machine

import (
	"sync"
	"sync/atomic"

	"github.com/enetx/g"
)

// TransitionFunc adapts a function to the Listener interface.
type TransitionFunc[S, T comparable, C any] func(ctx C, from, to g.Option[S])

func (f TransitionFunc[S, T, C]) OnTransitioning(ctx C, from, to g.Option[S]) { f(ctx, from, to) }

// InvalidTriggerFunc is a Listener that only handles invalid triggers. Attaching
// one, even a no-op, replaces the ErrInvalidTrigger default.
type InvalidTriggerFunc[S, T comparable, C any] func(ctx C, trigger T, state S)

func (InvalidTriggerFunc[S, T, C]) OnTransitioning(C, g.Option[S], g.Option[S]) {}

func (f InvalidTriggerFunc[S, T, C]) OnInvalidTrigger(ctx C, trigger T, state S) { f(ctx, trigger, state) }

// Metrics is a Listener collecting simple counters. It does not handle invalid
// triggers, so attaching it keeps the default policy.
type Metrics[S, T comparable, C any] struct {
	starts      atomic.Int64
	stops       atomic.Int64
	transitions atomic.Int64

	mu      sync.Mutex
	entries g.Map[S, int64]
}

// MetricsSnapshot is an immutable snapshot of Metrics.
type MetricsSnapshot[S comparable] struct {
	Starts      int64
	Stops       int64
	Transitions int64
	Entries     g.Map[S, int64]
}

// NewMetrics creates an empty metrics listener.
func NewMetrics[S, T comparable, C any]() *Metrics[S, T, C] {
	return &Metrics[S, T, C]{entries: g.NewMap[S, int64]()}
}

func (mt *Metrics[S, T, C]) OnTransitioning(_ C, from, to g.Option[S]) {
	switch {
	case from.IsNone():
		mt.starts.Add(1)
	case to.IsNone():
		mt.stops.Add(1)
		return
	default:
		mt.transitions.Add(1)
	}

	mt.mu.Lock()
	mt.entries[to.Some()]++
	mt.mu.Unlock()
}

// Snapshot returns the current counter values.
func (mt *Metrics[S, T, C]) Snapshot() MetricsSnapshot[S] {
	mt.mu.Lock()
	entries := g.NewMap[S, int64]()
	for id, n := range mt.entries {
		entries[id] = n
	}
	mt.mu.Unlock()

	return MetricsSnapshot[S]{
		Starts:      mt.starts.Load(),
		Stops:       mt.stops.Load(),
		Transitions: mt.transitions.Load(),
		Entries:     entries,
	}
}
