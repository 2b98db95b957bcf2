// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/logger"
	"github.com/pkg/errors"
)

// Mem control values.
//
const (
	MemNone  = 0
	MemRead  = 1
	MemWrite = 2
)

// Mem output names.
//
const (
	MemDataOut = "data"
	MemErrOut  = "err"
)

// Mem is a generic memory.
//
//	Inputs: data, addr, ctrl, sign, size
//	Outputs: data, err
//	Function: switch ctrl {
//	          case MemRead: data = mem[addr]; err = misaligned(addr, size)
//	          case MemWrite: mem[addr] = data; err = misaligned(addr, size)
//	          }
//
// size is the access width in bytes: 1, 2 or 4. Reads are sign extended when
// sign is non-zero. The memory is big-endian unless LittleEndian is set.
//
// With ctrl set to MemNone, outputs are left unchanged. Control values outside
// of the above, or an invalid size, are reported as ErrInvalidControl.
//
type Mem struct {
	ID           string       `json:"id"`
	Data         netsim.Input `json:"data" sim:"in"`
	Addr         netsim.Input `json:"addr" sim:"in"`
	Ctrl         netsim.Input `json:"ctrl" sim:"in"`
	Sign         netsim.Input `json:"sign" sim:"in"`
	Size         netsim.Input `json:"size" sim:"in"`
	LittleEndian bool         `json:"little_endian,omitempty"`

	backing
}

// NewMem returns a new big-endian Mem seeded with init.
//
func NewMem(id string, data, addr, ctrl, sign, size netsim.Input, init map[uint64]byte) *Mem {
	m := &Mem{ID: id, Data: data, Addr: addr, Ctrl: ctrl, Sign: sign, Size: size}
	m.Seed(init)
	return m
}

// IDPorts implements netsim.Component.
func (m *Mem) IDPorts() (string, netsim.Ports) {
	return m.ID, ports(m, netsim.Combinational, MemDataOut, MemErrOut)
}

// SetIDPort implements netsim.Component.
func (m *Mem) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(m, portID, in)
}

// Kind implements netsim.Component.
func (*Mem) Kind() string { return "Mem" }

// Clock implements netsim.Component.
func (m *Mem) Clock(s *netsim.Simulator) error {
	op := MemOp{Cycle: s.Cycle()}
	defer func() { m.push(op, s.HistoryDepth()) }()

	vs, err := portUints(s, netsim.InputPort{PortID: "ctrl", Input: m.Ctrl})
	if err != nil {
		return err
	}
	ctrl := vs[0]
	switch ctrl {
	case MemNone:
		return nil
	case MemRead, MemWrite:
	default:
		return errors.Wrapf(netsim.ErrInvalidControl, "ctrl %d", ctrl)
	}

	vs, err = portUints(s,
		netsim.InputPort{PortID: "addr", Input: m.Addr},
		netsim.InputPort{PortID: "size", Input: m.Size})
	if err != nil {
		return err
	}
	addr, size := uint64(vs[0]), int(vs[1])
	switch size {
	case 1, 2, 4:
	default:
		return errors.Wrapf(netsim.ErrInvalidControl, "size %d", vs[1])
	}
	be := !m.LittleEndian
	mem := m.Memory()

	if ctrl == MemRead {
		sign, err := s.GetInputValue(m.Sign).Bool()
		if err != nil {
			return errors.Wrap(err, "port sign")
		}
		s.SetOutValue(m.ID, MemDataOut, mem.Read(addr, size, sign, be))
	} else {
		data, err := s.GetInputValue(m.Data).Uint()
		if err != nil {
			return errors.Wrap(err, "port data")
		}
		m.write(&op, addr, size, be, false, data)
	}
	al := mem.Align(addr, size)
	if b, _ := al.Bool(); b {
		logger.Logf("mem", "%s: misaligned access at %#x, size %d", m.ID, addr, size)
	}
	s.SetOutValue(m.ID, MemErrOut, al)
	return nil
}
