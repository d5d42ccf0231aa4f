package machine_test

import (
	"github.com/enetx/g"

	"github.com/enetx/machine"
)

type trigger string

const (
	state1Success trigger = "STATE1_SUCCESS"
	state1Fail    trigger = "STATE1_FAIL"
	state2Success trigger = "STATE2_SUCCESS"
	state2Fail    trigger = "STATE2_FAIL"
	state7Success trigger = "STATE7_SUCCESS"
	state8Success trigger = "STATE8_SUCCESS"
)

type testContext struct {
	logs  g.Slice[string]
	value int
}

type testMachine = machine.Machine[string, trigger, *testContext]

// logState appends its entries and exits to the context log and optionally
// runs a hook after entering.
type logState struct {
	name    string
	ctx     *testContext
	onEnter func(m *testMachine) error
}

func (s *logState) Enter(m *testMachine, ctx *testContext) error {
	s.ctx = ctx
	ctx.logs.Push("Entering " + s.name)

	if s.onEnter != nil {
		return s.onEnter(m)
	}

	return nil
}

func (s *logState) Exit() error {
	s.ctx.logs.Push("Exiting " + s.name)
	return nil
}

func logged(name string) machine.Factory[string, trigger, *testContext] {
	return func() machine.State[string, trigger, *testContext] { return &logState{name: name} }
}

// passThrough fires next as soon as it is entered.
func passThrough(name string, next trigger) machine.Factory[string, trigger, *testContext] {
	return func() machine.State[string, trigger, *testContext] {
		return &logState{name: name, onEnter: func(m *testMachine) error { return m.Trigger(next) }}
	}
}

// loggingResolver builds a logState for any identifier.
func loggingResolver() machine.Resolver[string, trigger, *testContext] {
	return machine.ResolverFunc[string, trigger, *testContext](
		func(id string) (machine.State[string, trigger, *testContext], error) {
			return &logState{name: id}, nil
		})
}

func newMachine() (*testMachine, *testContext) {
	ctx := &testContext{}
	m := machine.New[string, trigger](ctx)
	m.WithResolver(loggingResolver())

	return m, ctx
}

func current(m *testMachine) string { return m.Current().UnwrapOr("") }

// recorder is a listener recording transitions.
type recorder struct {
	transitions g.Slice[string]
}

func (r *recorder) OnTransitioning(_ *testContext, from, to g.Option[string]) {
	r.transitions.Push(from.UnwrapOr("<none>") + " -> " + to.UnwrapOr("<none>"))
}

// invalidRecorder also takes over invalid triggers.
type invalidRecorder struct {
	recorder
	invalid g.Slice[trigger]
}

func (r *invalidRecorder) OnInvalidTrigger(_ *testContext, t trigger, _ string) {
	r.invalid.Push(t)
}
