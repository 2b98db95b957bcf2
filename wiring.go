// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"
)

// An Input references a named output of a producer component. It is a lookup
// key resolved against the simulator state on every tick, not an ownership
// relation.
//
// Outputs of multi-valued producers are named with the bus convention
// name[i] (see BusName).
//
type Input struct {
	ID    string `json:"id"`
	Field string `json:"field"`
}

// NewInput returns an Input for output field of producer id.
//
func NewInput(id, field string) Input {
	return Input{ID: id, Field: field}
}

// NewBusInput returns an Input for element i of the bus output name of producer id.
//
func NewBusInput(id, name string, i int) Input {
	return Input{ID: id, Field: BusName(name, i)}
}

func (i Input) String() string {
	return i.ID + "." + i.Field
}

// BusName returns the name of element i of bus name.
//
func BusName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// An InputPort binds a component's local input port name to the Input it
// currently reads.
//
type InputPort struct {
	PortID string
	Input  Input
}

// OutputType classifies the timing of a component's outputs.
//
type OutputType int

// Output timings.
//
const (
	// Combinational outputs are a pure function of the current tick's inputs.
	Combinational OutputType = iota
	// Sequential outputs reflect state latched during a previous tick.
	Sequential
)

func (t OutputType) String() string {
	if t == Sequential {
		return "sequential"
	}
	return "combinational"
}

// Ports describes a component's declared inputs, output timing and output names.
//
type Ports struct {
	Inputs  []InputPort
	OutType OutputType
	Outputs []string
}

// NewPorts returns a Ports value.
//
func NewPorts(inputs []InputPort, outType OutputType, outputs ...string) Ports {
	return Ports{Inputs: inputs, OutType: outType, Outputs: outputs}
}

// Input returns the Input bound to the given port.
//
func (p Ports) Input(portID string) (Input, bool) {
	for _, ip := range p.Inputs {
		if ip.PortID == portID {
			return ip.Input, true
		}
	}
	return Input{}, false
}

// HasOutput returns true if name is one of the declared outputs.
//
func (p Ports) HasOutput(name string) bool {
	for _, o := range p.Outputs {
		if o == name {
			return true
		}
	}
	return false
}
