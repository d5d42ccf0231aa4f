package machine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enetx/machine"
)

func TestConstructors(t *testing.T) {
	cs := machine.NewConstructors[string, trigger, *testContext]().
		Provide("S1", logged("S1")).
		Provide("S2", logged("S2"))

	state, err := cs.Resolve("S1")
	require.NoError(t, err)
	assert.IsType(t, &logState{}, state)

	_, err = cs.Resolve("S3")

	var noCtor *machine.ErrNoConstructor
	require.ErrorAs(t, err, &noCtor)
	assert.Equal(t, "S3", noCtor.State)
}

func TestConstructors_AsResolver(t *testing.T) {
	ctx := &testContext{}
	m := machine.New[string, trigger](ctx)
	m.WithResolver(machine.NewConstructors[string, trigger, *testContext]().
		Provide("S1", logged("S1")).
		Provide("S2", logged("S2")))

	m.State("S1").MarkInitial().On(state1Success).GoesTo("S2")
	m.State("S2").On(state2Fail).GoesTo("S3")

	require.NoError(t, m.Start())
	require.NoError(t, m.Trigger(state1Success))

	err := m.Trigger(state2Fail)
	assert.True(t, machine.IsStateConstruction(err))
	assert.Equal(t, "S2", current(m))
	assert.Equal(t, []string{"Entering S1", "Exiting S1", "Entering S2"}, []string(ctx.logs))
}
