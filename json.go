package machine

import (
	"encoding/json"

	"github.com/enetx/g"
)

// Snapshot is a read-only, serializable view of the machine: its configured
// graph and its runtime position. It cannot be loaded back into a machine.
type Snapshot[S, T comparable] struct {
	ID      string                       `json:"id"`
	Running bool                         `json:"running"`
	Initial *S                           `json:"initial,omitempty"`
	Current *S                           `json:"current,omitempty"`
	History g.Slice[S]                   `json:"history"`
	States  g.Slice[StateSnapshot[S, T]] `json:"states"`
}

// StateSnapshot describes the transitions of one state.
type StateSnapshot[S, T comparable] struct {
	State       S                                 `json:"state"`
	Transitions g.Slice[TransitionSnapshot[S, T]] `json:"transitions"`
}

// TransitionSnapshot describes one configured edge.
type TransitionSnapshot[S, T comparable] struct {
	Trigger T    `json:"trigger"`
	Target  S    `json:"target"`
	Guarded bool `json:"guarded"`
}

// Snapshot captures the machine's configuration and position.
func (m *Machine[S, T, C]) Snapshot() Snapshot[S, T] {
	snap := Snapshot[S, T]{
		ID:      m.id,
		Running: m.Running(),
		History: m.history.Clone(),
	}

	if m.initial.IsSome() {
		initial := m.initial.Some()
		snap.Initial = &initial
	}

	if m.current.IsSome() {
		current := m.current.Some()
		snap.Current = &current
	}

	for _, id := range m.order {
		sc := m.states[id]
		state := StateSnapshot[S, T]{State: id, Transitions: g.Slice[TransitionSnapshot[S, T]]{}}

		for _, trigger := range sc.triggers {
			for _, spec := range sc.Transitions(trigger) {
				state.Transitions.Push(TransitionSnapshot[S, T]{
					Trigger: trigger,
					Target:  spec.target,
					Guarded: spec.Guarded(),
				})
			}
		}

		snap.States.Push(state)
	}

	return snap
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine[S, T, C]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Snapshot())
}
