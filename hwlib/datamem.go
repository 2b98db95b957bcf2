// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/logger"
	"github.com/pkg/errors"
)

// DataMem port and output names.
//
const (
	DataMemAddrIn  = "addr_in"
	DataMemOpIn    = "op_in"
	DataMemWDIn    = "wd_in"
	DataMemWEIn    = "we_in"
	DataMemDataOut = "data_out"
)

// MIPS load/store opcodes understood by DataMem.
//
const (
	OpLB  = 0x20
	OpLH  = 0x21
	OpLWL = 0x22
	OpLW  = 0x23
	OpLBU = 0x24
	OpLHU = 0x25
	OpLWR = 0x26
	OpSB  = 0x28
	OpSH  = 0x29
	OpSW  = 0x2B
)

// decodeOp returns the access width and signedness for op. Unknown opcodes
// select an unsigned word access.
func decodeOp(op uint32) (size int, sign bool, err error) {
	switch op {
	case OpLB:
		return 1, true, nil
	case OpLH:
		return 2, true, nil
	case OpLWL:
		return 0, false, errors.Wrap(netsim.ErrNotImplemented, "LWL")
	case OpLW, OpSW:
		return 4, false, nil
	case OpLBU, OpSB:
		return 1, false, nil
	case OpLHU, OpSH:
		return 2, false, nil
	case OpLWR:
		return 0, false, errors.Wrap(netsim.ErrNotImplemented, "LWR")
	}
	return 4, false, nil
}

// DataMem is a MIPS style data memory.
//
//	Inputs: addr_in, op_in, wd_in, we_in
//	Outputs: data_out
//	Function: if we_in == 1 { mem[addr_in] = wd_in }
//	          data_out = mem[addr_in]
//
// The access width and signedness are selected by op_in (see the Op
// constants). Writes to address 0 are discarded. The memory is big-endian
// unless LittleEndian is set.
//
// Misaligned accesses are performed as requested, logged and recorded in the
// history. Inputs that do not carry data, as well as the LWL and LWR opcodes,
// are reported as conditions and leave data_out unchanged.
//
type DataMem struct {
	ID           string       `json:"id"`
	Addr         netsim.Input `json:"addr" sim:"in,addr_in"`
	Op           netsim.Input `json:"op" sim:"in,op_in"`
	WD           netsim.Input `json:"wd" sim:"in,wd_in"`
	WE           netsim.Input `json:"we" sim:"in,we_in"`
	LittleEndian bool         `json:"little_endian,omitempty"`

	backing
}

// NewDataMem returns a new big-endian DataMem seeded with init.
//
func NewDataMem(id string, addr, op, wd, we netsim.Input, init map[uint64]byte) *DataMem {
	d := &DataMem{ID: id, Addr: addr, Op: op, WD: wd, WE: we}
	d.Seed(init)
	return d
}

// IDPorts implements netsim.Component.
func (d *DataMem) IDPorts() (string, netsim.Ports) {
	return d.ID, ports(d, netsim.Combinational, DataMemDataOut)
}

// SetIDPort implements netsim.Component.
func (d *DataMem) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(d, portID, in)
}

// Kind implements netsim.Component.
func (*DataMem) Kind() string { return "DataMem" }

// Clock implements netsim.Component.
func (d *DataMem) Clock(s *netsim.Simulator) error {
	op := MemOp{Cycle: s.Cycle()}
	defer func() { d.push(op, s.HistoryDepth()) }()

	vs, err := portUints(s,
		netsim.InputPort{PortID: DataMemAddrIn, Input: d.Addr},
		netsim.InputPort{PortID: DataMemOpIn, Input: d.Op},
		netsim.InputPort{PortID: DataMemWEIn, Input: d.WE})
	if err != nil {
		return err
	}
	addr, we := uint64(vs[0]), vs[2]
	size, sign, err := decodeOp(vs[1])
	if err != nil {
		return err
	}
	be := !d.LittleEndian
	m := d.Memory()

	if we == 1 {
		wd, err := s.GetInputValue(d.WD).Uint()
		if err != nil {
			return errors.Wrap(err, "port "+DataMemWDIn)
		}
		d.write(&op, addr, size, be, true, wd)
		if op.Misaligned {
			logger.Logf("datamem", "%s: misaligned write at %#x, size %d", d.ID, addr, size)
		}
	} else if misaligned(m, addr, size) {
		logger.Logf("datamem", "%s: misaligned read at %#x, size %d", d.ID, addr, size)
	}

	s.SetOutValue(d.ID, DataMemDataOut, m.Read(addr, size, sign, be))
	return nil
}
