// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"github.com/db47h/netsim"
	"github.com/stretchr/testify/require"
)

// Harness drives a simulator from a test: poke values on outputs, clock, and
// check outputs. Failed checks stop the test.
//
type Harness struct {
	t   require.TestingT
	Sim *netsim.Simulator
}

// New returns a Harness for a new simulator over the given components.
//
func New(t require.TestingT, cs []netsim.Component, opts ...netsim.Option) *Harness {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	s, err := netsim.New(netsim.NewStore(cs...), opts...)
	require.NoError(t, err)
	return &Harness{t: t, Sim: s}
}

// Poke sets output out of component id to Data(v).
//
func (h *Harness) Poke(id string, v uint32) *Harness {
	h.Sim.SetOutValue(id, "out", netsim.Data(v))
	return h
}

// PokeValue sets output field of component id to v.
//
func (h *Harness) PokeValue(id, field string, v netsim.Value) *Harness {
	h.Sim.SetOutValue(id, field, v)
	return h
}

// Clock clocks the simulator and requires that no component reports a
// condition.
//
func (h *Harness) Clock() *Harness {
	require.NoError(h.t, h.Sim.Clock(), "cycle %d", h.Sim.Cycle())
	return h
}

// ClockErr clocks the simulator and returns the sweep error, if any.
//
func (h *Harness) ClockErr() error {
	return h.Sim.Clock()
}

// Expect checks that output field of component id is v.
//
func (h *Harness) Expect(id, field string, v netsim.Value) *Harness {
	got, ok := h.Sim.Peek(id, field)
	require.True(h.t, ok, "no such output %s.%s", id, field)
	require.Equal(h.t, v, got, "%s.%s at cycle %d: expected %v, got %v", id, field, h.Sim.Cycle(), v, got)
	return h
}

// ExpectData checks that output field of component id is Data(v).
//
func (h *Harness) ExpectData(id, field string, v uint32) *Harness {
	return h.Expect(id, field, netsim.Data(v))
}
