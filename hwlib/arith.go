// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// Add is a 32 bits adder.
//
//	Inputs: a, b
//	Outputs: out, overflow
//	Function: out = a + b
//	          overflow = 1 if the signed addition overflows
//
type Add struct {
	ID string       `json:"id"`
	A  netsim.Input `json:"a" sim:"in"`
	B  netsim.Input `json:"b" sim:"in"`
}

// NewAdd returns a new Add.
//
func NewAdd(id string, a, b netsim.Input) *Add { return &Add{ID: id, A: a, B: b} }

// IDPorts implements netsim.Component.
func (a *Add) IDPorts() (string, netsim.Ports) {
	return a.ID, ports(a, netsim.Combinational, pOut, "overflow")
}

// SetIDPort implements netsim.Component.
func (a *Add) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(a, portID, in)
}

// Kind implements netsim.Component.
func (*Add) Kind() string { return "Add" }

// Clock implements netsim.Component.
func (a *Add) Clock(s *netsim.Simulator) error {
	vs, ok := uints(s, a.A, a.B)
	if !ok {
		s.SetOutValue(a.ID, pOut, netsim.Unknown)
		s.SetOutValue(a.ID, "overflow", netsim.Unknown)
		return nil
	}
	sum := vs[0] + vs[1]
	// signed overflow: operands of equal sign, result of the other sign.
	ovf := (^(vs[0]^vs[1])&(vs[0]^sum))>>31 != 0
	s.SetOutValue(a.ID, pOut, netsim.Data(sum))
	s.SetOutValue(a.ID, "overflow", netsim.Bool(ovf))
	return nil
}

// Equal compares two values.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a == b
//
type Equal struct {
	ID string       `json:"id"`
	A  netsim.Input `json:"a" sim:"in"`
	B  netsim.Input `json:"b" sim:"in"`
}

// NewEqual returns a new Equal.
//
func NewEqual(id string, a, b netsim.Input) *Equal { return &Equal{ID: id, A: a, B: b} }

// IDPorts implements netsim.Component.
func (e *Equal) IDPorts() (string, netsim.Ports) {
	return e.ID, ports(e, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (e *Equal) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(e, portID, in)
}

// Kind implements netsim.Component.
func (*Equal) Kind() string { return "Equal" }

// Clock implements netsim.Component.
func (e *Equal) Clock(s *netsim.Simulator) error {
	vs, ok := uints(s, e.A, e.B)
	if !ok {
		s.SetOutValue(e.ID, pOut, netsim.Unknown)
		return nil
	}
	s.SetOutValue(e.ID, pOut, netsim.Bool(vs[0] == vs[1]))
	return nil
}

func checkBits(bits int) error {
	if bits < 1 || bits > 32 {
		return errors.Wrapf(netsim.ErrInvalidControl, "bit width %d", bits)
	}
	return nil
}

// SignExtend sign extends the low Bits bits of its input to 32 bits.
//
//	Inputs: in
//	Outputs: out
//
type SignExtend struct {
	ID   string       `json:"id"`
	In   netsim.Input `json:"in" sim:"in"`
	Bits int          `json:"bits"`
}

// NewSignExtend returns a new SignExtend.
//
func NewSignExtend(id string, in netsim.Input, bits int) *SignExtend {
	return &SignExtend{ID: id, In: in, Bits: bits}
}

// IDPorts implements netsim.Component.
func (x *SignExtend) IDPorts() (string, netsim.Ports) {
	return x.ID, ports(x, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (x *SignExtend) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(x, portID, in)
}

// Kind implements netsim.Component.
func (*SignExtend) Kind() string { return "SignExtend" }

// Clock implements netsim.Component.
func (x *SignExtend) Clock(s *netsim.Simulator) error {
	if err := checkBits(x.Bits); err != nil {
		return err
	}
	v, err := s.GetInputValue(x.In).Uint()
	if err != nil {
		s.SetOutValue(x.ID, pOut, netsim.Unknown)
		return nil
	}
	shift := uint(32 - x.Bits)
	s.SetOutValue(x.ID, pOut, netsim.Signed(int32(v<<shift)>>shift))
	return nil
}

// ZeroExtend clears all but the low Bits bits of its input.
//
//	Inputs: in
//	Outputs: out
//
type ZeroExtend struct {
	ID   string       `json:"id"`
	In   netsim.Input `json:"in" sim:"in"`
	Bits int          `json:"bits"`
}

// NewZeroExtend returns a new ZeroExtend.
//
func NewZeroExtend(id string, in netsim.Input, bits int) *ZeroExtend {
	return &ZeroExtend{ID: id, In: in, Bits: bits}
}

// IDPorts implements netsim.Component.
func (x *ZeroExtend) IDPorts() (string, netsim.Ports) {
	return x.ID, ports(x, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (x *ZeroExtend) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(x, portID, in)
}

// Kind implements netsim.Component.
func (*ZeroExtend) Kind() string { return "ZeroExtend" }

// Clock implements netsim.Component.
func (x *ZeroExtend) Clock(s *netsim.Simulator) error {
	if err := checkBits(x.Bits); err != nil {
		return err
	}
	v, err := s.GetInputValue(x.In).Uint()
	if err != nil {
		s.SetOutValue(x.ID, pOut, netsim.Unknown)
		return nil
	}
	shift := uint(32 - x.Bits)
	s.SetOutValue(x.ID, pOut, netsim.Data(v<<shift>>shift))
	return nil
}

// ShiftLeftConst shifts its input left by a constant amount.
//
//	Inputs: in
//	Outputs: out
//	Function: out = in << Shift
//
type ShiftLeftConst struct {
	ID    string       `json:"id"`
	In    netsim.Input `json:"in" sim:"in"`
	Shift uint         `json:"shift"`
}

// NewShiftLeftConst returns a new ShiftLeftConst.
//
func NewShiftLeftConst(id string, in netsim.Input, shift uint) *ShiftLeftConst {
	return &ShiftLeftConst{ID: id, In: in, Shift: shift}
}

// IDPorts implements netsim.Component.
func (x *ShiftLeftConst) IDPorts() (string, netsim.Ports) {
	return x.ID, ports(x, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (x *ShiftLeftConst) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(x, portID, in)
}

// Kind implements netsim.Component.
func (*ShiftLeftConst) Kind() string { return "ShiftLeftConst" }

// Clock implements netsim.Component.
func (x *ShiftLeftConst) Clock(s *netsim.Simulator) error {
	v, err := s.GetInputValue(x.In).Uint()
	if err != nil {
		s.SetOutValue(x.ID, pOut, netsim.Unknown)
		return nil
	}
	s.SetOutValue(x.ID, pOut, netsim.Data(v<<x.Shift))
	return nil
}
