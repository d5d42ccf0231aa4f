package machine

import (
	"errors"
	"fmt"
)

// ErrMixedGuardKinds is recorded when a trigger is registered both with and
// without a guard on the same state. Guarded and unguarded transitions for one
// trigger cannot be combined.
type ErrMixedGuardKinds struct {
	State   any
	Trigger any
	// Guarded reports the kind of the rejected registration.
	Guarded bool
}

func (e *ErrMixedGuardKinds) Error() string {
	if e.Guarded {
		return fmt.Sprintf("machine: trigger %v on state %v is already registered without guard, cannot add it as guarded",
			e.Trigger, e.State)
	}

	return fmt.Sprintf("machine: trigger %v on state %v is already registered with guard, cannot add it as unguarded",
		e.Trigger, e.State)
}

// ErrNoInitialState is returned by Start when no state was marked initial.
var ErrNoInitialState = errors.New("machine: cannot start, no initial state set")

// ErrAlreadyRunning is returned by Start when the machine has not been stopped.
type ErrAlreadyRunning struct {
	Current any
}

func (e *ErrAlreadyRunning) Error() string {
	return fmt.Sprintf("machine: already running in state %v", e.Current)
}

// ErrNotRunning is returned when a trigger is fired before Start or after Stop.
type ErrNotRunning struct {
	Trigger any
}

func (e *ErrNotRunning) Error() string {
	return fmt.Sprintf("machine: cannot fire trigger %v, machine is not running", e.Trigger)
}

// ErrNoGuardSatisfied is returned when every guard registered for a trigger
// evaluated to false.
type ErrNoGuardSatisfied struct {
	State   any
	Trigger any
}

func (e *ErrNoGuardSatisfied) Error() string {
	return fmt.Sprintf("machine: no guard for trigger %v evaluates to true on state %v", e.Trigger, e.State)
}

// ErrAmbiguousGuards is returned when more than one guard registered for a
// trigger evaluated to true. The transition is aborted rather than resolved by
// registration order.
type ErrAmbiguousGuards struct {
	State   any
	Trigger any
}

func (e *ErrAmbiguousGuards) Error() string {
	return fmt.Sprintf("machine: more than one guard for trigger %v evaluates to true on state %v",
		e.Trigger, e.State)
}

// ErrGuardEvaluation wraps an error returned by a guard, or a recovered panic.
type ErrGuardEvaluation struct {
	State   any
	Trigger any
	Err     error
}

func (e *ErrGuardEvaluation) Error() string {
	return fmt.Sprintf("machine: could not evaluate guard for trigger %v on state %v: %v", e.Trigger, e.State, e.Err)
}

func (e *ErrGuardEvaluation) Unwrap() error { return e.Err }

// ErrInvalidTrigger is returned when the current state has no transition for
// the fired trigger and no listener handles invalid triggers.
type ErrInvalidTrigger struct {
	State   any
	Trigger any
}

func (e *ErrInvalidTrigger) Error() string {
	return fmt.Sprintf("machine: trigger %v is not valid for state %v", e.Trigger, e.State)
}

// ErrNoConstructor is returned by the default resolver for states registered
// without a Factory.
type ErrNoConstructor struct {
	State any
}

func (e *ErrNoConstructor) Error() string {
	return fmt.Sprintf("machine: no constructor registered for state %v", e.State)
}

// ErrStateConstruction wraps a resolver failure.
type ErrStateConstruction struct {
	State any
	Err   error
}

func (e *ErrStateConstruction) Error() string {
	return fmt.Sprintf("machine: could not construct state %v: %v", e.State, e.Err)
}

func (e *ErrStateConstruction) Unwrap() error { return e.Err }

// ErrOrphanedState is returned by Verify for a state that is neither initial
// nor the target of any transition.
type ErrOrphanedState struct {
	State any
}

func (e *ErrOrphanedState) Error() string {
	return fmt.Sprintf("machine: state %v isn't referenced by any trigger", e.State)
}

// ErrMaxDepthExceeded is returned when triggers fired from Enter nest deeper
// than the configured limit.
type ErrMaxDepthExceeded struct {
	Trigger any
	Depth   int
}

func (e *ErrMaxDepthExceeded) Error() string {
	return fmt.Sprintf("machine: trigger %v exceeds the re-entrant depth limit of %d", e.Trigger, e.Depth)
}

// ErrCallback is returned when a state's Enter or Exit returns an error or
// panics. It wraps the original error.
type ErrCallback struct {
	// HookType is "Enter" or "Exit".
	HookType string
	State    any
	Err      error
}

func (e *ErrCallback) Error() string {
	return fmt.Sprintf("machine: error in %s of state %v: %v", e.HookType, e.State, e.Err)
}

func (e *ErrCallback) Unwrap() error { return e.Err }

func IsMixedGuardKinds(err error) bool {
	var e *ErrMixedGuardKinds
	return errors.As(err, &e)
}

func IsInvalidTrigger(err error) bool {
	var e *ErrInvalidTrigger
	return errors.As(err, &e)
}

func IsNoGuardSatisfied(err error) bool {
	var e *ErrNoGuardSatisfied
	return errors.As(err, &e)
}

func IsAmbiguousGuards(err error) bool {
	var e *ErrAmbiguousGuards
	return errors.As(err, &e)
}

func IsOrphanedState(err error) bool {
	var e *ErrOrphanedState
	return errors.As(err, &e)
}

func IsStateConstruction(err error) bool {
	var e *ErrStateConstruction
	return errors.As(err, &e)
}
