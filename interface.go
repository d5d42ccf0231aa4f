package machine

import "github.com/enetx/g"

// StateMachine is the runtime surface shared by Machine and SyncMachine.
type StateMachine[S, T comparable, C any] interface {
	Start() error
	Stop() error
	Trigger(T) error
	Verify() error
	Current() g.Option[S]
	Context() C
	Running() bool
	History() g.Slice[S]
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
}

// Interface compliance checks.
var (
	_ StateMachine[string, string, any] = (*Machine[string, string, any])(nil)
	_ StateMachine[string, string, any] = (*SyncMachine[string, string, any])(nil)
)
