// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"fmt"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/memory"
	"github.com/pkg/errors"
)

// HistoryWindow is the minimum number of history entries retained by
// memory-backed components. More are kept when the simulator's history depth
// is larger (see netsim.WithHistory).
//
const HistoryWindow = 32

// MemOp is a history entry of a memory-backed component. One entry is
// recorded per clock tick, whether the tick wrote memory or not. Only the
// most recent entries are retained (see HistoryWindow).
//
type MemOp struct {
	Cycle      uint64       // cycle number of the tick
	Write      bool         // true if the tick requested a write
	Addr       uint64       // write address
	Size       int          // write width in bytes
	Prev       netsim.Value // unsigned contents of [Addr, Addr+Size) before the write
	Misaligned bool         // Addr was not a multiple of Size
	Discarded  bool         // write suppressed (address 0)

	bigEndian bool
}

func (op MemOp) String() string {
	if !op.Write {
		return fmt.Sprintf("%d: -", op.Cycle)
	}
	s := fmt.Sprintf("%d: write %#x/%d, was %v", op.Cycle, op.Addr, op.Size, op.Prev)
	if op.Misaligned {
		s += " (misaligned)"
	}
	if op.Discarded {
		s += " (discarded)"
	}
	return s
}

// backing holds the memory and write history shared by memory-backed
// components. Neither is persisted.
type backing struct {
	mem     *memory.Memory
	history []MemOp
}

// Memory returns the component's backing store.
//
func (b *backing) Memory() *memory.Memory {
	if b.mem == nil {
		b.mem = memory.New(nil)
	}
	return b.mem
}

// Seed replaces the initial contents of the backing store, resets it and
// clears the history.
//
func (b *backing) Seed(init map[uint64]byte) {
	b.Memory().Seed(init)
	b.history = nil
}

// Reset restores the initial contents of the backing store and clears the
// history.
//
func (b *backing) Reset() {
	b.Memory().Reset()
	b.history = nil
}

// UnClock reverts the write, if any, of the last recorded tick.
//
func (b *backing) UnClock() {
	n := len(b.history)
	if n == 0 {
		return
	}
	op := b.history[n-1]
	b.history = b.history[:n-1]
	if !op.Write || op.Discarded {
		return
	}
	if v, err := op.Prev.Uint(); err == nil {
		b.Memory().Write(op.Addr, op.Size, op.bigEndian, v)
	}
}

// History returns a copy of the recorded history, oldest first.
//
func (b *backing) History() []MemOp {
	return append([]MemOp(nil), b.history...)
}

// push records op, dropping the oldest entries past max(depth, HistoryWindow).
func (b *backing) push(op MemOp, depth int) {
	if depth < HistoryWindow {
		depth = HistoryWindow
	}
	if len(b.history) >= depth {
		n := copy(b.history, b.history[len(b.history)-depth+1:])
		b.history = b.history[:n]
	}
	b.history = append(b.history, op)
}

// write records op as a write of data at addr and performs it unless addr is
// zero and discardZero is set.
func (b *backing) write(op *MemOp, addr uint64, size int, bigEndian, discardZero bool, data uint32) {
	m := b.Memory()
	op.Write = true
	op.Addr = addr
	op.Size = size
	op.bigEndian = bigEndian
	op.Prev = m.Read(addr, size, false, bigEndian)
	op.Misaligned = misaligned(m, addr, size)
	if discardZero && addr == 0 {
		op.Discarded = true
		return
	}
	m.Write(addr, size, bigEndian, data)
}

func misaligned(m *memory.Memory, addr uint64, size int) bool {
	b, _ := m.Align(addr, size).Bool()
	return b
}

// portUints returns the data carried by the given input ports. The error
// names the first port that does not carry data.
func portUints(s *netsim.Simulator, ps ...netsim.InputPort) ([]uint32, error) {
	vs := make([]uint32, len(ps))
	for i, p := range ps {
		v, err := s.GetInputValue(p.Input).Uint()
		if err != nil {
			return nil, errors.Wrapf(err, "port %s", p.PortID)
		}
		vs[i] = v
	}
	return vs, nil
}
