// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/netsim"

// Register is a clocked data register.
//
//	Inputs: r_in
//	Outputs: out
//	Function: out(t) = r_in(t-1) // where t is the current clock cycle.
//
// Register is sequential: when evaluated in dependency order, it latches the
// value its input settled to during the previous tick. In store order, it must
// come before the logic driving its input.
//
type Register struct {
	ID string       `json:"id"`
	In netsim.Input `json:"in" sim:"in,r_in"`
}

// NewRegister returns a new Register.
//
func NewRegister(id string, in netsim.Input) *Register { return &Register{ID: id, In: in} }

// IDPorts implements netsim.Component.
func (r *Register) IDPorts() (string, netsim.Ports) {
	return r.ID, ports(r, netsim.Sequential, pOut)
}

// SetIDPort implements netsim.Component.
func (r *Register) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(r, portID, in)
}

// Kind implements netsim.Component.
func (*Register) Kind() string { return "Register" }

// Clock implements netsim.Component.
func (r *Register) Clock(s *netsim.Simulator) error {
	s.SetOutValue(r.ID, pOut, s.GetInputValue(r.In))
	return nil
}
