package engine

import (
	"errors"
	"fmt"
)

// ErrDuplicateOutput indicates two callbacks writing the same output.
var ErrDuplicateOutput = errors.New("output already has a callback")

// ErrNoInputs indicates a callback that depends on nothing.
var ErrNoInputs = errors.New("callback has no inputs")

// Key identifies one property of one page component, e.g. json-input.value.
type Key struct {
	Component string
	Property  string
}

func (k Key) String() string {
	return k.Component + "." + k.Property
}

// Handler computes an output from the current values of a callback's inputs,
// given in the callback's declaration order.
type Handler func(args []string) (any, error)

// Callback binds one output to the inputs it is computed from.
type Callback struct {
	Output  Key
	Inputs  []Key
	Handler Handler
}

// Dispatcher maps input changes to the callbacks that depend on them.
// Register every callback before the first Dispatch; after that the
// Dispatcher is read-only and safe for concurrent use.
type Dispatcher struct {
	callbacks []Callback
	byInput   map[Key][]int
	outputs   map[Key]bool
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		byInput: make(map[Key][]int),
		outputs: make(map[Key]bool),
	}
}

// Register adds a callback.
func (d *Dispatcher) Register(cb Callback) error {
	if len(cb.Inputs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoInputs, cb.Output)
	}
	if d.outputs[cb.Output] {
		return fmt.Errorf("%w: %s", ErrDuplicateOutput, cb.Output)
	}
	cb.Inputs = append([]Key(nil), cb.Inputs...)
	idx := len(d.callbacks)
	d.callbacks = append(d.callbacks, cb)
	d.outputs[cb.Output] = true
	for _, in := range cb.Inputs {
		if !containsIndex(d.byInput[in], idx) {
			d.byInput[in] = append(d.byInput[in], idx)
		}
	}
	return nil
}

// IsInput reports whether any callback depends on k.
func (d *Dispatcher) IsInput(k Key) bool {
	return len(d.byInput[k]) > 0
}

// Initial evaluates every callback, for the first render of a page.
func (d *Dispatcher) Initial(values map[Key]string) (map[Key]any, error) {
	idx := make([]int, len(d.callbacks))
	for i := range d.callbacks {
		idx[i] = i
	}
	return d.run(idx, values)
}

// Dispatch evaluates the callbacks that depend on changed. Outputs of failing
// handlers are left out and their errors joined; the remaining outputs are
// still returned.
func (d *Dispatcher) Dispatch(values map[Key]string, changed Key) (map[Key]any, error) {
	return d.run(d.byInput[changed], values)
}

func (d *Dispatcher) run(idx []int, values map[Key]string) (map[Key]any, error) {
	outputs := make(map[Key]any, len(idx))
	var errs []error
	for _, i := range idx {
		cb := d.callbacks[i]
		args := make([]string, len(cb.Inputs))
		for j, in := range cb.Inputs {
			args[j] = values[in]
		}
		out, err := cb.Handler(args)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cb.Output, err))
			continue
		}
		outputs[cb.Output] = out
	}
	return outputs, errors.Join(errs...)
}

func containsIndex(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
