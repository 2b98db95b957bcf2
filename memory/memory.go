// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package memory implements the sparse byte-addressable store used by
// memory-backed components.
//
// Unset addresses read as zero. The store grows by one entry per distinct
// address written and is not bounded: it is meant for the small address
// spaces of simulated netlists.
//
package memory

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/db47h/netsim"
)

// Memory is a sparse byte-addressable store.
//
type Memory struct {
	bytes map[uint64]byte
	init  map[uint64]byte
}

// New returns a new Memory with the given initial contents. The init map is
// copied and kept for Reset.
//
func New(init map[uint64]byte) *Memory {
	m := &Memory{init: copyBytes(init)}
	m.Reset()
	return m
}

func copyBytes(src map[uint64]byte) map[uint64]byte {
	dst := make(map[uint64]byte, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func checkSize(size int) {
	switch size {
	case 1, 2, 4:
	default:
		panic(fmt.Sprintf("illegal sized memory operation, size = %d", size))
	}
}

// Align returns Data(1) if addr is not a multiple of size, Data(0) otherwise.
// This is a misalignment flag; callers decide how to surface it.
//
func (m *Memory) Align(addr uint64, size int) netsim.Value {
	checkSize(size)
	return netsim.Bool(addr%uint64(size) != 0)
}

// Read reads size bytes starting at addr and assembles them according to
// bigEndian. If sign is true and size is less than 4, the result is sign
// extended to 32 bits, otherwise it is zero extended.
//
// Read panics if size is not 1, 2 or 4.
//
func (m *Memory) Read(addr uint64, size int, sign, bigEndian bool) netsim.Value {
	checkSize(size)
	var buf [4]byte
	for i := 0; i < size; i++ {
		buf[i] = m.bytes[addr+uint64(i)]
	}
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}
	switch size {
	case 1:
		if sign {
			return netsim.Signed(int32(int8(buf[0])))
		}
		return netsim.Data(uint32(buf[0]))
	case 2:
		v := order.Uint16(buf[:2])
		if sign {
			return netsim.Signed(int32(int16(v)))
		}
		return netsim.Data(uint32(v))
	default:
		return netsim.Data(order.Uint32(buf[:]))
	}
}

// Write stores the low size bytes of data at addr, ordered according to
// bigEndian.
//
// Write panics if size is not 1, 2 or 4.
//
func (m *Memory) Write(addr uint64, size int, bigEndian bool, data uint32) {
	checkSize(size)
	var buf [4]byte
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}
	switch size {
	case 1:
		buf[0] = byte(data)
	case 2:
		order.PutUint16(buf[:2], uint16(data))
	default:
		order.PutUint32(buf[:], data)
	}
	for i := 0; i < size; i++ {
		m.bytes[addr+uint64(i)] = buf[i]
	}
}

// Byte returns the byte at addr.
//
func (m *Memory) Byte(addr uint64) byte {
	return m.bytes[addr]
}

// Load copies b into memory starting at addr.
//
func (m *Memory) Load(addr uint64, b []byte) {
	for i, v := range b {
		m.bytes[addr+uint64(i)] = v
	}
}

// Seed replaces the initial contents of the memory and resets it.
//
func (m *Memory) Seed(init map[uint64]byte) {
	m.init = copyBytes(init)
	m.Reset()
}

// Reset restores the initial contents.
//
func (m *Memory) Reset() {
	m.bytes = copyBytes(m.init)
}

// Len returns the number of addresses holding a value.
//
func (m *Memory) Len() int { return len(m.bytes) }

// Addresses returns the sorted list of addresses holding a value.
//
func (m *Memory) Addresses() []uint64 {
	as := make([]uint64, 0, len(m.bytes))
	for a := range m.bytes {
		as = append(as, a)
	}
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	return as
}

// Snapshot returns a copy of the memory contents.
//
func (m *Memory) Snapshot() map[uint64]byte {
	return copyBytes(m.bytes)
}

// Dump writes a hex dump of all 16 bytes lines holding at least one set
// address to w.
//
func (m *Memory) Dump(w io.Writer) error {
	last := uint64(1) // never a line address
	for _, a := range m.Addresses() {
		line := a &^ 0xf
		if line == last {
			continue
		}
		last = line
		if _, err := fmt.Fprintf(w, "%08x:", line); err != nil {
			return err
		}
		for i := uint64(0); i < 16; i++ {
			if i == 8 {
				io.WriteString(w, " ")
			}
			fmt.Fprintf(w, " %02x", m.bytes[line+i])
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
