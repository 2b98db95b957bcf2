// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable components for netsim.
//
// All components are registered for persistence under their type name (see
// netsim.RegisterKind) when the package is imported.
//
// Combinational components propagate netsim.Unknown on their outputs when any
// of their inputs does not carry data. Memory-backed components report such
// inputs as conditions instead.
//
package hwlib

import (
	"github.com/db47h/netsim"
)

// default output name
const pOut = "out"

func init() {
	for kind, fn := range map[string]netsim.NewComponentFn{
		"Constant":       func() netsim.Component { return new(Constant) },
		"ProbeOut":       func() netsim.Component { return new(ProbeOut) },
		"Probe":          func() netsim.Component { return new(Probe) },
		"ProbeStim":      func() netsim.Component { return new(ProbeStim) },
		"Source":         func() netsim.Component { return new(Source) },
		"Sink":           func() netsim.Component { return new(Sink) },
		"Gate":           func() netsim.Component { return new(Gate) },
		"Not":            func() netsim.Component { return new(Not) },
		"Add":            func() netsim.Component { return new(Add) },
		"Equal":          func() netsim.Component { return new(Equal) },
		"SignExtend":     func() netsim.Component { return new(SignExtend) },
		"ZeroExtend":     func() netsim.Component { return new(ZeroExtend) },
		"ShiftLeftConst": func() netsim.Component { return new(ShiftLeftConst) },
		"Mux":            func() netsim.Component { return new(Mux) },
		"Register":       func() netsim.Component { return new(Register) },
		"Wire":           func() netsim.Component { return new(Wire) },
		"Mem":            func() netsim.Component { return new(Mem) },
		"DataMem":        func() netsim.Component { return new(DataMem) },
		"InstrMem":       func() netsim.Component { return new(InstrMem) },
	} {
		netsim.RegisterKind(kind, fn)
	}
}

func ports(c interface{}, t netsim.OutputType, outputs ...string) netsim.Ports {
	return netsim.NewPorts(netsim.InputPortsOf(c), t, outputs...)
}

// uints returns the data carried by the given inputs. ok is false if any of
// them is not a data value.
func uints(s *netsim.Simulator, ins ...netsim.Input) (vs []uint32, ok bool) {
	vs = make([]uint32, len(ins))
	for i, in := range ins {
		v, err := s.GetInputValue(in).Uint()
		if err != nil {
			return nil, false
		}
		vs[i] = v
	}
	return vs, true
}
