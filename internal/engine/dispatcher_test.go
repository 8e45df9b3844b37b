package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartweb/internal/engine"
)

var (
	keyA   = engine.Key{Component: "a", Property: "value"}
	keyB   = engine.Key{Component: "b", Property: "value"}
	outSum = engine.Key{Component: "sum", Property: "children"}
	outB   = engine.Key{Component: "echo", Property: "children"}
)

func concat(args []string) (any, error) {
	s := ""
	for _, a := range args {
		s += a
	}
	return s, nil
}

func newTestDispatcher(t *testing.T) *engine.Dispatcher {
	t.Helper()
	d := engine.NewDispatcher()
	require.NoError(t, d.Register(engine.Callback{Output: outSum, Inputs: []engine.Key{keyA, keyB}, Handler: concat}))
	require.NoError(t, d.Register(engine.Callback{Output: outB, Inputs: []engine.Key{keyB}, Handler: concat}))
	return d
}

func TestDispatcher_Register_Errors(t *testing.T) {
	d := newTestDispatcher(t)

	err := d.Register(engine.Callback{Output: outSum, Inputs: []engine.Key{keyA}, Handler: concat})
	assert.ErrorIs(t, err, engine.ErrDuplicateOutput)

	err = d.Register(engine.Callback{Output: engine.Key{Component: "x", Property: "y"}, Handler: concat})
	assert.ErrorIs(t, err, engine.ErrNoInputs)
}

func TestDispatcher_DispatchOnlyDependents(t *testing.T) {
	d := newTestDispatcher(t)
	values := map[engine.Key]string{keyA: "1", keyB: "2"}

	out, err := d.Dispatch(values, keyA)
	require.NoError(t, err)
	assert.Equal(t, map[engine.Key]any{outSum: "12"}, out)

	out, err = d.Dispatch(values, keyB)
	require.NoError(t, err)
	assert.Equal(t, map[engine.Key]any{outSum: "12", outB: "2"}, out)
}

func TestDispatcher_UnknownKey(t *testing.T) {
	d := newTestDispatcher(t)
	out, err := d.Dispatch(nil, engine.Key{Component: "nope", Property: "value"})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, d.IsInput(engine.Key{Component: "nope", Property: "value"}))
	assert.True(t, d.IsInput(keyA))
}

func TestDispatcher_Initial(t *testing.T) {
	d := newTestDispatcher(t)
	out, err := d.Initial(map[engine.Key]string{keyA: "x", keyB: "y"})
	require.NoError(t, err)
	assert.Equal(t, map[engine.Key]any{outSum: "xy", outB: "y"}, out)
}

func TestDispatcher_HandlerErrorKeepsOtherOutputs(t *testing.T) {
	boom := errors.New("boom")
	d := engine.NewDispatcher()
	require.NoError(t, d.Register(engine.Callback{Output: outSum, Inputs: []engine.Key{keyA}, Handler: concat}))
	require.NoError(t, d.Register(engine.Callback{
		Output:  outB,
		Inputs:  []engine.Key{keyA},
		Handler: func([]string) (any, error) { return nil, boom },
	}))

	out, err := d.Dispatch(map[engine.Key]string{keyA: "v"}, keyA)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, map[engine.Key]any{outSum: "v"}, out)
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "json-input.value", engine.Key{Component: "json-input", Property: "value"}.String())
}
