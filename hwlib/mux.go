// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/netsim"
	"github.com/pkg/errors"
)

// Mux is an n-way multiplexer.
//
//	Inputs: select, in[n]
//	Outputs: out
//	Function: out = in[select]
//
// A select value that does not carry data drives Unknown. An out of range
// select drives Unknown and is reported as ErrInvalidControl.
//
type Mux struct {
	ID     string         `json:"id"`
	Select netsim.Input   `json:"select" sim:"in,select"`
	In     []netsim.Input `json:"in" sim:"in"`
}

// NewMux returns a new Mux.
//
func NewMux(id string, sel netsim.Input, in ...netsim.Input) *Mux {
	return &Mux{ID: id, Select: sel, In: in}
}

// IDPorts implements netsim.Component.
func (m *Mux) IDPorts() (string, netsim.Ports) {
	return m.ID, ports(m, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (m *Mux) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(m, portID, in)
}

// Kind implements netsim.Component.
func (*Mux) Kind() string { return "Mux" }

// Clock implements netsim.Component.
func (m *Mux) Clock(s *netsim.Simulator) error {
	sel, err := s.GetInputValue(m.Select).Uint()
	if err != nil {
		s.SetOutValue(m.ID, pOut, netsim.Unknown)
		return nil
	}
	if uint64(sel) >= uint64(len(m.In)) {
		s.SetOutValue(m.ID, pOut, netsim.Unknown)
		return errors.Wrapf(netsim.ErrInvalidControl, "select %d out of range [0, %d)", sel, len(m.In))
	}
	s.SetOutValue(m.ID, pOut, s.GetInputValue(m.In[sel]))
	return nil
}
