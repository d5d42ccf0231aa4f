package machine

import (
	"errors"
	"fmt"

	"github.com/enetx/g"
)

// When adapts an infallible predicate to a Guard.
func When[C any](pred func(ctx C) bool) Guard[C] {
	return func(ctx C) (bool, error) { return pred(ctx), nil }
}

// Target returns the state the transition leads to.
func (ts TransitionSpec[S, C]) Target() S { return ts.target }

// Guarded reports whether the transition carries a guard.
func (ts TransitionSpec[S, C]) Guarded() bool { return ts.guard != nil }

func newStateConfig[S, T comparable, C any](m *Machine[S, T, C], id S) *StateConfig[S, T, C] {
	return &StateConfig[S, T, C]{
		machine:   m,
		id:        id,
		unguarded: g.NewMap[T, TransitionSpec[S, C]](),
		guarded:   g.NewMap[T, g.Slice[TransitionSpec[S, C]]](),
	}
}

// ID returns the identifier of the configured state.
func (sc *StateConfig[S, T, C]) ID() S { return sc.id }

// MarkInitial makes this state the one entered by Start. A later call on
// another state replaces it.
func (sc *StateConfig[S, T, C]) MarkInitial() *StateConfig[S, T, C] {
	sc.machine.initial = g.Some(sc.id)
	return sc
}

// Use registers the factory the default resolver calls to build this state.
func (sc *StateConfig[S, T, C]) Use(factory Factory[S, T, C]) *StateConfig[S, T, C] {
	sc.factory = factory
	return sc
}

// On starts an unguarded transition for trigger. Calling GoesTo again for a
// trigger that already has an unguarded transition replaces its target.
func (sc *StateConfig[S, T, C]) On(trigger T) *TransitionBuilder[S, T, C] {
	tb := &TransitionBuilder[S, T, C]{config: sc, trigger: trigger}
	tb.err = sc.checkKind(trigger, false)

	return tb
}

// OnWhen starts a guarded transition for trigger. Several guarded transitions
// may be registered for one trigger; exactly one guard must hold when it fires.
func (sc *StateConfig[S, T, C]) OnWhen(trigger T, guard Guard[C]) *TransitionBuilder[S, T, C] {
	tb := &TransitionBuilder[S, T, C]{config: sc, trigger: trigger, guard: guard}

	switch {
	case guard == nil:
		tb.err = fmt.Errorf("machine: nil guard for trigger %v on state %v", trigger, sc.id)
		sc.machine.configErr = errors.Join(sc.machine.configErr, tb.err)
	default:
		tb.err = sc.checkKind(trigger, true)
	}

	return tb
}

// checkKind records a mixed registration on the machine as soon as it happens.
func (sc *StateConfig[S, T, C]) checkKind(trigger T, guarded bool) error {
	var mixed bool
	if guarded {
		_, mixed = sc.unguarded[trigger]
	} else {
		_, mixed = sc.guarded[trigger]
	}

	if !mixed {
		return nil
	}

	err := &ErrMixedGuardKinds{State: sc.id, Trigger: trigger, Guarded: guarded}
	sc.machine.configErr = errors.Join(sc.machine.configErr, err)

	return err
}

// Err returns the registration error of the builder, if any.
func (tb *TransitionBuilder[S, T, C]) Err() error { return tb.err }

// GoesTo commits the transition to target and returns the owning state
// configuration. The target is registered on the machine if it is new.
func (tb *TransitionBuilder[S, T, C]) GoesTo(target S) *StateConfig[S, T, C] {
	sc := tb.config
	if tb.err != nil {
		return sc
	}

	if tb.err = sc.checkKind(tb.trigger, tb.guard != nil); tb.err != nil {
		return sc
	}

	sc.machine.State(target)
	spec := TransitionSpec[S, C]{target: target, guard: tb.guard}

	if !sc.known(tb.trigger) {
		sc.triggers.Push(tb.trigger)
	}

	if tb.guard == nil {
		sc.unguarded[tb.trigger] = spec
	} else {
		sc.guarded[tb.trigger] = append(sc.guarded[tb.trigger], spec)
	}

	return sc
}

func (sc *StateConfig[S, T, C]) known(trigger T) bool {
	if _, ok := sc.unguarded[trigger]; ok {
		return true
	}

	_, ok := sc.guarded[trigger]

	return ok
}

// Triggers returns the triggers accepted by this state in registration order.
func (sc *StateConfig[S, T, C]) Triggers() g.Slice[T] { return sc.triggers.Clone() }

// Transitions returns the transitions registered for trigger. An unguarded
// trigger yields a single spec.
func (sc *StateConfig[S, T, C]) Transitions(trigger T) g.Slice[TransitionSpec[S, C]] {
	if spec, ok := sc.unguarded[trigger]; ok {
		return g.SliceOf(spec)
	}

	return sc.guarded[trigger].Clone()
}

// targets lists the targets of every transition, duplicates included.
func (sc *StateConfig[S, T, C]) targets() g.Slice[S] {
	var out g.Slice[S]

	for _, trigger := range sc.triggers {
		for _, spec := range sc.Transitions(trigger) {
			out.Push(spec.target)
		}
	}

	return out
}

// resolve picks the transition that applies to trigger. It returns None when
// the state does not accept the trigger at all.
func (sc *StateConfig[S, T, C]) resolve(trigger T, ctx C) (g.Option[TransitionSpec[S, C]], error) {
	if spec, ok := sc.unguarded[trigger]; ok {
		return g.Some(spec), nil
	}

	specs, ok := sc.guarded[trigger]
	if !ok {
		return g.None[TransitionSpec[S, C]](), nil
	}

	satisfied := g.None[TransitionSpec[S, C]]()

	for _, spec := range specs {
		pass, err := sc.evaluate(spec.guard, trigger, ctx)
		if err != nil {
			return g.None[TransitionSpec[S, C]](), err
		}

		if !pass {
			continue
		}

		if satisfied.IsSome() {
			return g.None[TransitionSpec[S, C]](), &ErrAmbiguousGuards{State: sc.id, Trigger: trigger}
		}

		satisfied = g.Some(spec)
	}

	if satisfied.IsNone() {
		return satisfied, &ErrNoGuardSatisfied{State: sc.id, Trigger: trigger}
	}

	return satisfied, nil
}

// evaluate runs one guard, turning errors and panics into ErrGuardEvaluation.
func (sc *StateConfig[S, T, C]) evaluate(guard Guard[C], trigger T, ctx C) (pass bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrGuardEvaluation{State: sc.id, Trigger: trigger, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	pass, err = guard(ctx)
	if err != nil {
		return false, &ErrGuardEvaluation{State: sc.id, Trigger: trigger, Err: err}
	}

	return pass, nil
}
