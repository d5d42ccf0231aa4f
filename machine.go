// Package machine provides a generic finite state machine engine. States are
// identified by any comparable value and backed by live State instances that
// are resolved on entry and discarded on exit. Transitions are configured per
// state, optionally guarded by predicates over a shared context, and driven
// synchronously by Trigger. It is built with types and utilities from the
// github.com/enetx/g library.
package machine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/enetx/g"
	"github.com/google/uuid"
)

// New creates a machine sharing ctx between all guards and states.
func New[S, T comparable, C any](ctx C, opts ...Option) *Machine[S, T, C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Machine[S, T, C]{
		id:       uuid.NewString(),
		states:   g.NewMap[S, *StateConfig[S, T, C]](),
		initial:  g.None[S](),
		current:  g.None[S](),
		ctx:      ctx,
		maxDepth: o.maxDepth,
		logger:   o.logger,
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m.logger = m.logger.With(slog.String("machine_id", m.id))
	m.resolver = ResolverFunc[S, T, C](m.construct)

	return m
}

// State returns the configuration for id, registering it on first use.
func (m *Machine[S, T, C]) State(id S) *StateConfig[S, T, C] {
	if sc, ok := m.states[id]; ok {
		return sc
	}

	sc := newStateConfig(m, id)
	m.states[id] = sc
	m.order.Push(id)

	return sc
}

// WithResolver replaces the default resolver, which builds states from the
// factories registered with StateConfig.Use. Set it before Start.
func (m *Machine[S, T, C]) WithResolver(r Resolver[S, T, C]) *Machine[S, T, C] {
	if r != nil {
		m.resolver = r
	}

	return m
}

// WithListener attaches a listener. Listeners are notified in attach order.
func (m *Machine[S, T, C]) WithListener(l Listener[S, T, C]) *Machine[S, T, C] {
	if l != nil {
		m.listeners.Push(l)
	}

	return m
}

// ID returns the unique identifier of this machine instance.
func (m *Machine[S, T, C]) ID() string { return m.id }

// Err returns the configuration errors recorded so far.
func (m *Machine[S, T, C]) Err() error { return m.configErr }

// Context returns the shared context.
func (m *Machine[S, T, C]) Context() C { return m.ctx }

// SetContext replaces the shared context.
func (m *Machine[S, T, C]) SetContext(ctx C) { m.ctx = ctx }

// Current returns the current state, or None when the machine is not running.
func (m *Machine[S, T, C]) Current() g.Option[S] { return m.current }

// Instance returns the live instance of the current state.
func (m *Machine[S, T, C]) Instance() g.Option[State[S, T, C]] {
	if m.live == nil {
		return g.None[State[S, T, C]]()
	}

	return g.Some(m.live)
}

// Running reports whether Start succeeded and Stop has not been called since.
func (m *Machine[S, T, C]) Running() bool { return m.current.IsSome() }

// History returns a copy of the states entered since the last Start.
func (m *Machine[S, T, C]) History() g.Slice[S] { return m.history.Clone() }

// States returns every registered state in registration order.
func (m *Machine[S, T, C]) States() g.Slice[S] { return m.order.Clone() }

// Start enters the initial state and notifies listeners of the transition
// from None to it.
func (m *Machine[S, T, C]) Start() error {
	if m.configErr != nil {
		return m.configErr
	}

	if m.current.IsSome() {
		return &ErrAlreadyRunning{Current: m.current.Some()}
	}

	if m.initial.IsNone() {
		return ErrNoInitialState
	}

	initial := m.initial.Some()

	instance, err := m.resolve(initial)
	if err != nil {
		return err
	}

	m.current = g.Some(initial)
	m.live = instance
	m.history = g.SliceOf(initial)

	m.logger.Debug("machine started", slog.Any("state", initial))

	err = m.enter(instance, initial)
	m.notify(g.None[S](), g.Some(initial))

	return err
}

// Stop notifies listeners of the transition from the current state to None,
// exits the live instance and leaves the machine stopped. Stopping a stopped
// machine does nothing.
func (m *Machine[S, T, C]) Stop() error {
	if m.current.IsNone() {
		return nil
	}

	current := m.current.Some()
	m.notify(m.current, g.None[S]())

	var err error
	if m.live != nil {
		err = m.exit(m.live, current)
	}

	m.live = nil
	m.current = g.None[S]()

	m.logger.Debug("machine stopped", slog.Any("state", current))

	return err
}

// Trigger fires trigger against the current state. On success the current
// instance is exited, listeners are notified and the target is entered. The
// target's Enter may fire further triggers; they complete before Trigger
// returns. A failed resolution leaves the machine in its previous state.
func (m *Machine[S, T, C]) Trigger(trigger T) error {
	if m.current.IsNone() {
		return &ErrNotRunning{Trigger: trigger}
	}

	m.depth++
	defer func() { m.depth-- }()

	if m.maxDepth > 0 && m.depth > m.maxDepth {
		return &ErrMaxDepthExceeded{Trigger: trigger, Depth: m.maxDepth}
	}

	source := m.current.Some()

	spec, err := m.State(source).resolve(trigger, m.ctx)
	if err != nil {
		m.logger.Debug("transition rejected",
			slog.Any("state", source), slog.Any("trigger", trigger), slog.Any("error", err))
		return err
	}

	if spec.IsNone() {
		return m.invalidTrigger(trigger, source)
	}

	target := spec.Some().target

	instance, err := m.resolve(target)
	if err != nil {
		return err
	}

	if m.live != nil {
		if err := m.exit(m.live, source); err != nil {
			return err
		}
	}

	m.live = nil
	m.current = g.Some(target)

	m.logger.Debug("transitioning",
		slog.Any("from", source), slog.Any("to", target),
		slog.Any("trigger", trigger), slog.Int("depth", m.depth))

	m.notify(g.Some(source), g.Some(target))

	m.live = instance
	m.history.Push(target)

	return m.enter(instance, target)
}

// invalidTrigger applies the invalid trigger policy: listeners implementing
// InvalidTriggerListener replace the default error.
func (m *Machine[S, T, C]) invalidTrigger(trigger T, state S) error {
	handled := false

	for _, l := range m.listeners {
		if h, ok := l.(InvalidTriggerListener[S, T, C]); ok {
			h.OnInvalidTrigger(m.ctx, trigger, state)
			handled = true
		}
	}

	m.logger.Debug("invalid trigger",
		slog.Any("state", state), slog.Any("trigger", trigger), slog.Bool("handled", handled))

	if handled {
		return nil
	}

	return &ErrInvalidTrigger{State: state, Trigger: trigger}
}

func (m *Machine[S, T, C]) notify(from, to g.Option[S]) {
	for _, l := range m.listeners {
		l.OnTransitioning(m.ctx, from, to)
	}
}

func (m *Machine[S, T, C]) resolve(id S) (State[S, T, C], error) {
	instance, err := m.resolver.Resolve(id)
	if err == nil && instance == nil {
		err = fmt.Errorf("resolver returned no instance")
	}

	if err != nil {
		return nil, &ErrStateConstruction{State: id, Err: err}
	}

	return instance, nil
}

// construct is the default resolver.
func (m *Machine[S, T, C]) construct(id S) (State[S, T, C], error) {
	sc, ok := m.states[id]
	if !ok || sc.factory == nil {
		return nil, &ErrNoConstructor{State: id}
	}

	return sc.factory(), nil
}

// enter runs Enter, recovering from panics.
func (m *Machine[S, T, C]) enter(instance State[S, T, C], id S) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrCallback{HookType: "Enter", State: id, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if cbErr := instance.Enter(m, m.ctx); cbErr != nil {
		err = &ErrCallback{HookType: "Enter", State: id, Err: cbErr}
	}

	return err
}

// exit runs Exit, recovering from panics.
func (m *Machine[S, T, C]) exit(instance State[S, T, C], id S) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrCallback{HookType: "Exit", State: id, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if cbErr := instance.Exit(); cbErr != nil {
		err = &ErrCallback{HookType: "Exit", State: id, Err: cbErr}
	}

	return err
}

// Resolve calls f(id).
func (f ResolverFunc[S, T, C]) Resolve(id S) (State[S, T, C], error) { return f(id) }
