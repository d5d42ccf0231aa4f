package machine

import (
	"log/slog"

	"github.com/enetx/g"
)

type (
	// State is the live object for one visit to a configured state.
	// A fresh instance is resolved on every entry and discarded after Exit.
	State[S, T comparable, C any] interface {
		// Enter is called once when the visit begins. The machine handle may be
		// used to fire further triggers before Enter returns.
		Enter(m *Machine[S, T, C], ctx C) error
		// Exit is called once when the visit ends.
		Exit() error
	}

	// Factory builds a state instance without arguments.
	Factory[S, T comparable, C any] func() State[S, T, C]

	// Guard decides whether a guarded transition applies for the given context.
	// A returned error aborts the trigger with ErrGuardEvaluation.
	Guard[C any] func(ctx C) (bool, error)

	// Resolver constructs the state instance for a state identifier.
	Resolver[S, T comparable, C any] interface {
		Resolve(id S) (State[S, T, C], error)
	}

	// ResolverFunc adapts a function to the Resolver interface.
	ResolverFunc[S, T comparable, C any] func(id S) (State[S, T, C], error)

	// Listener is notified of every transition, including start (from is None)
	// and stop (to is None).
	Listener[S, T comparable, C any] interface {
		OnTransitioning(ctx C, from, to g.Option[S])
	}

	// InvalidTriggerListener is implemented by listeners that take over the
	// handling of triggers the current state does not accept. When any attached
	// listener implements it, Trigger returns nil instead of ErrInvalidTrigger.
	InvalidTriggerListener[S, T comparable, C any] interface {
		OnInvalidTrigger(ctx C, trigger T, state S)
	}

	// TransitionSpec is a committed trigger -> target edge.
	TransitionSpec[S comparable, C any] struct {
		target S
		guard  Guard[C]
	}

	// TransitionBuilder is returned by StateConfig.On and StateConfig.OnWhen and
	// commits the edge once GoesTo names the target.
	TransitionBuilder[S, T comparable, C any] struct {
		config  *StateConfig[S, T, C]
		trigger T
		guard   Guard[C]
		err     error
	}

	// StateConfig holds the transitions registered for one state.
	StateConfig[S, T comparable, C any] struct {
		machine   *Machine[S, T, C]
		id        S
		factory   Factory[S, T, C]
		triggers  g.Slice[T]
		unguarded g.Map[T, TransitionSpec[S, C]]
		guarded   g.Map[T, g.Slice[TransitionSpec[S, C]]]
	}

	// Machine is the state machine engine. It is not safe for concurrent use;
	// see Sync for a serialized facade.
	Machine[S, T comparable, C any] struct {
		id        string
		states    g.Map[S, *StateConfig[S, T, C]]
		order     g.Slice[S]
		initial   g.Option[S]
		current   g.Option[S]
		live      State[S, T, C]
		history   g.Slice[S]
		ctx       C
		resolver  Resolver[S, T, C]
		listeners g.Slice[Listener[S, T, C]]
		configErr error
		depth     int
		maxDepth  int
		logger    *slog.Logger
	}
)
