// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"sort"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

var gateFns = map[string]func(a, b uint32) uint32{
	"AND":  func(a, b uint32) uint32 { return a & b },
	"NAND": func(a, b uint32) uint32 { return ^(a & b) },
	"OR":   func(a, b uint32) uint32 { return a | b },
	"NOR":  func(a, b uint32) uint32 { return ^(a | b) },
	"XOR":  func(a, b uint32) uint32 { return a ^ b },
	"XNOR": func(a, b uint32) uint32 { return ^(a ^ b) },
}

// GateOps returns the sorted list of operations supported by Gate.
//
func GateOps() []string {
	ops := make([]string, 0, len(gateFns))
	for k := range gateFns {
		ops = append(ops, k)
	}
	sort.Strings(ops)
	return ops
}

// Gate is a 32 bits bitwise logic gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: for each bit i, out[i] = Op(a[i], b[i])
//
// Op is one of AND, NAND, OR, NOR, XOR, XNOR.
//
type Gate struct {
	ID string       `json:"id"`
	Op string       `json:"op"`
	A  netsim.Input `json:"a" sim:"in"`
	B  netsim.Input `json:"b" sim:"in"`
}

// NewGate returns a new Gate.
//
func NewGate(id, op string, a, b netsim.Input) *Gate {
	return &Gate{ID: id, Op: op, A: a, B: b}
}

// And returns a AND gate.
//
func And(id string, a, b netsim.Input) *Gate { return NewGate(id, "AND", a, b) }

// Nand returns a NAND gate.
//
func Nand(id string, a, b netsim.Input) *Gate { return NewGate(id, "NAND", a, b) }

// Or returns a OR gate.
//
func Or(id string, a, b netsim.Input) *Gate { return NewGate(id, "OR", a, b) }

// Nor returns a NOR gate.
//
func Nor(id string, a, b netsim.Input) *Gate { return NewGate(id, "NOR", a, b) }

// Xor returns a XOR gate.
//
func Xor(id string, a, b netsim.Input) *Gate { return NewGate(id, "XOR", a, b) }

// Xnor returns a XNOR gate.
//
func Xnor(id string, a, b netsim.Input) *Gate { return NewGate(id, "XNOR", a, b) }

// IDPorts implements netsim.Component.
func (g *Gate) IDPorts() (string, netsim.Ports) {
	return g.ID, ports(g, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (g *Gate) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(g, portID, in)
}

// Kind implements netsim.Component.
func (*Gate) Kind() string { return "Gate" }

// Clock implements netsim.Component.
func (g *Gate) Clock(s *netsim.Simulator) error {
	fn := gateFns[g.Op]
	if fn == nil {
		s.SetOutValue(g.ID, pOut, netsim.Unknown)
		return errors.Wrapf(netsim.ErrNotImplemented, "gate operation %q", g.Op)
	}
	vs, ok := uints(s, g.A, g.B)
	if !ok {
		s.SetOutValue(g.ID, pOut, netsim.Unknown)
		return nil
	}
	s.SetOutValue(g.ID, pOut, netsim.Data(fn(vs[0], vs[1])))
	return nil
}

// Not is a 32 bits NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = ^in
//
type Not struct {
	ID string       `json:"id"`
	In netsim.Input `json:"in" sim:"in"`
}

// NewNot returns a new Not gate.
//
func NewNot(id string, in netsim.Input) *Not { return &Not{ID: id, In: in} }

// IDPorts implements netsim.Component.
func (n *Not) IDPorts() (string, netsim.Ports) {
	return n.ID, ports(n, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (n *Not) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(n, portID, in)
}

// Kind implements netsim.Component.
func (*Not) Kind() string { return "Not" }

// Clock implements netsim.Component.
func (n *Not) Clock(s *netsim.Simulator) error {
	v, err := s.GetInputValue(n.In).Uint()
	if err != nil {
		s.SetOutValue(n.ID, pOut, netsim.Unknown)
		return nil
	}
	s.SetOutValue(n.ID, pOut, netsim.Data(^v))
	return nil
}
