// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/logger"
)

// InstrMem port and output names.
//
const (
	InstrMemAddrIn   = "addr_in"
	InstrMemInstrOut = "instr_out"
)

// InstrMem is a read-only instruction memory.
//
//	Inputs: addr_in
//	Outputs: instr_out
//	Function: instr_out = mem[addr_in] // 32 bits, big-endian
//
type InstrMem struct {
	ID   string       `json:"id"`
	Addr netsim.Input `json:"addr" sim:"in,addr_in"`

	backing
}

// NewInstrMem returns a new InstrMem seeded with init.
//
func NewInstrMem(id string, addr netsim.Input, init map[uint64]byte) *InstrMem {
	im := &InstrMem{ID: id, Addr: addr}
	im.Seed(init)
	return im
}

// IDPorts implements netsim.Component.
func (im *InstrMem) IDPorts() (string, netsim.Ports) {
	return im.ID, ports(im, netsim.Combinational, InstrMemInstrOut)
}

// SetIDPort implements netsim.Component.
func (im *InstrMem) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(im, portID, in)
}

// Kind implements netsim.Component.
func (*InstrMem) Kind() string { return "InstrMem" }

// Clock implements netsim.Component.
func (im *InstrMem) Clock(s *netsim.Simulator) error {
	vs, err := portUints(s, netsim.InputPort{PortID: InstrMemAddrIn, Input: im.Addr})
	if err != nil {
		return err
	}
	addr := uint64(vs[0])
	m := im.Memory()
	if misaligned(m, addr, 4) {
		logger.Logf("instrmem", "%s: misaligned fetch at %#x", im.ID, addr)
	}
	s.SetOutValue(im.ID, InstrMemInstrOut, m.Read(addr, 4, false, true))
	return nil
}
