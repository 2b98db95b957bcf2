// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing netlists.
//
package hwtest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/hwlib"
)

// A Builder builds a netlist reading the given inputs. Component ids must be
// prefixed with prefix. It returns the components and the Inputs referencing
// the netlist's outputs.
//
type Builder func(prefix string, in []netsim.Input) (cs []netsim.Component, out []netsim.Input)

// Part returns a Builder for a single component whose ports are bound, in
// order, to the builder inputs. Its declared outputs are the builder outputs.
//
func Part(newFn func(id string, in ...netsim.Input) netsim.Component) Builder {
	return func(prefix string, in []netsim.Input) ([]netsim.Component, []netsim.Input) {
		c := newFn(prefix+"part", in...)
		id, ps := c.IDPorts()
		out := make([]netsim.Input, len(ps.Outputs))
		for i, o := range ps.Outputs {
			out[i] = netsim.NewInput(id, o)
		}
		return []netsim.Component{c}, out
	}
}

func inputString(vs []uint32) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("in")
		b.WriteString(strconv.Itoa(i))
		b.WriteString("=0x")
		b.WriteString(strconv.FormatUint(uint64(v), 16))
	}
	return b.String()
}

// ComparePart takes two netlist builders and compares their outputs given the
// same inputs. Both must read n inputs and produce the same number of outputs.
// The netlists are evaluated in dependency order.
//
// Inputs are set to all zeros, all ones, then to random values for a number of
// iterations.
//
func ComparePart(t *testing.T, n int, b1, b2 Builder) {
	t.Helper()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	ins := make([]netsim.Input, n)
	store := netsim.NewStore()
	for i := range ins {
		id := "in" + strconv.Itoa(i)
		store.Add(hwlib.NewProbeOut(id))
		ins[i] = netsim.NewInput(id, "out")
	}
	cs1, out1 := b1("a_", ins)
	cs2, out2 := b2("b_", ins)
	if len(out1) != len(out2) {
		t.Fatalf("len(out1) = %d != len(out2) = %d", len(out1), len(out2))
	}
	store.Add(cs1...)
	store.Add(cs2...)

	s, err := netsim.New(store, netsim.WithDependencyOrder())
	if err != nil {
		t.Fatal(err)
	}

	vs := make([]uint32, n)
	check := func() {
		t.Helper()
		for i := range ins {
			s.SetOutValue(ins[i].ID, ins[i].Field, netsim.Data(vs[i]))
		}
		if err := s.Clock(); err != nil {
			t.Fatalf("%s: %v", inputString(vs), err)
		}
		for o := range out1 {
			v1 := s.GetInputValue(out1[o])
			v2 := s.GetInputValue(out2[o])
			if v1 != v2 {
				t.Fatalf("\nExpected %s => %s=%v\nGot %v", inputString(vs), out2[o].Field, v1, v2)
			}
		}
	}

	start := time.Now()

	// try all 0
	check()
	// try all 1
	for i := range vs {
		vs[i] = ^uint32(0)
	}
	check()

	iter := 1 << 10
	for i := 0; i < iter; i++ {
		for in := range vs {
			vs[in] = rnd.Uint32()
		}
		check()
	}

	elapsed := time.Since(start)
	t.Logf("%d components. %d clock ticks in %v => %.2f Hz", s.Size(), s.Cycle(), elapsed, float64(s.Cycle())/(float64(elapsed)/float64(time.Second)))
}
