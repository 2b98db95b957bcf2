// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// A Component is a hardware block in a netlist.
//
// Clock is the per-tick state transition function. It reads inputs with
// Simulator.GetInputValue, writes its outputs with Simulator.SetOutValue and
// may update private state. It returns a non-nil error for unimplemented
// operations or invalid input combinations. Conditions that can only be caused
// by a broken netlist (unresolvable wiring, invalid memory access widths)
// panic instead.
//
// Callers that need access to a specific component type simply use a type
// assertion on the Component.
//
type Component interface {
	// IDPorts returns the component's id and port description. It must not
	// have side effects.
	IDPorts() (string, Ports)
	// SetIDPort rebinds the input port portID to in. It is only used by
	// netlist construction tools, never during evaluation.
	SetIDPort(portID string, in Input) error
	// Clock runs one tick.
	Clock(s *Simulator) error
	// Kind returns the name under which the component type is registered
	// for persistence (see RegisterKind).
	Kind() string
}

// A Resetter is a Component with private state that can be restored to its
// initial configuration. See Simulator.Reset.
//
type Resetter interface {
	Reset()
}

// An Unclocker is a Component with private state that can revert the effect
// of its last Clock call. See Simulator.UnClock.
//
type Unclocker interface {
	UnClock()
}

// A Seeder is a memory-backed Component whose backing store can be seeded
// with initial contents.
//
type Seeder interface {
	Seed(contents map[uint64]byte)
}
