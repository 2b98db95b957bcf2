// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/netsim"
)

// Constant drives a constant value.
//
//	Outputs: out
//	Function: out = Value
//
type Constant struct {
	ID    string `json:"id"`
	Value uint32 `json:"value"`
}

// NewConstant returns a new Constant.
//
func NewConstant(id string, v uint32) *Constant { return &Constant{ID: id, Value: v} }

// IDPorts implements netsim.Component.
func (c *Constant) IDPorts() (string, netsim.Ports) {
	return c.ID, ports(c, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (c *Constant) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(c, portID, in)
}

// Kind implements netsim.Component.
func (*Constant) Kind() string { return "Constant" }

// Clock implements netsim.Component.
func (c *Constant) Clock(s *netsim.Simulator) error {
	s.SetOutValue(c.ID, pOut, netsim.Data(c.Value))
	return nil
}

// ProbeOut is a poke point: its output is only ever changed by callers of
// Simulator.SetOutValue. It stays Uninitialized until then.
//
//	Outputs: out
//
type ProbeOut struct {
	ID string `json:"id"`
}

// NewProbeOut returns a new ProbeOut.
//
func NewProbeOut(id string) *ProbeOut { return &ProbeOut{ID: id} }

// IDPorts implements netsim.Component.
func (p *ProbeOut) IDPorts() (string, netsim.Ports) {
	return p.ID, ports(p, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (p *ProbeOut) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(p, portID, in)
}

// Kind implements netsim.Component.
func (*ProbeOut) Kind() string { return "ProbeOut" }

// Clock implements netsim.Component.
func (*ProbeOut) Clock(*netsim.Simulator) error { return nil }

// Probe observes a signal. It has no outputs.
//
//	Inputs: in
//
type Probe struct {
	ID string       `json:"id"`
	In netsim.Input `json:"in" sim:"in"`
}

// NewProbe returns a new Probe.
//
func NewProbe(id string, in netsim.Input) *Probe { return &Probe{ID: id, In: in} }

// IDPorts implements netsim.Component.
func (p *Probe) IDPorts() (string, netsim.Ports) {
	return p.ID, ports(p, netsim.Combinational)
}

// SetIDPort implements netsim.Component.
func (p *Probe) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(p, portID, in)
}

// Kind implements netsim.Component.
func (*Probe) Kind() string { return "Probe" }

// Clock implements netsim.Component.
func (*Probe) Clock(*netsim.Simulator) error { return nil }

// Value returns the current value of the probed signal.
//
func (p *Probe) Value(s *netsim.Simulator) netsim.Value {
	return s.GetInputValue(p.In)
}

// ProbeStim drives a sequence of values, one per evaluation pass. Values[0] is
// driven during the initial settle pass, Values[n] during the pass that
// completes cycle n. Past the end of the sequence, the output is Unknown.
//
//	Outputs: out
//
type ProbeStim struct {
	ID     string         `json:"id"`
	Values []netsim.Value `json:"values"`
}

// NewProbeStim returns a new ProbeStim.
//
func NewProbeStim(id string, values ...netsim.Value) *ProbeStim {
	return &ProbeStim{ID: id, Values: values}
}

// IDPorts implements netsim.Component.
func (p *ProbeStim) IDPorts() (string, netsim.Ports) {
	return p.ID, ports(p, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (p *ProbeStim) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(p, portID, in)
}

// Kind implements netsim.Component.
func (*ProbeStim) Kind() string { return "ProbeStim" }

// Clock implements netsim.Component.
func (p *ProbeStim) Clock(s *netsim.Simulator) error {
	v := netsim.Unknown
	if c := s.Cycle(); c < uint64(len(p.Values)) {
		v = p.Values[c]
	}
	s.SetOutValue(p.ID, pOut, v)
	return nil
}

// Source is a function based input. Fn is not persisted: a decoded Source
// drives Unknown until Fn is set.
//
//	Outputs: out
//	Function: out = Fn()
//
type Source struct {
	ID string              `json:"id"`
	Fn func() netsim.Value `json:"-"`
}

// NewSource returns a new Source.
//
func NewSource(id string, fn func() netsim.Value) *Source { return &Source{ID: id, Fn: fn} }

// IDPorts implements netsim.Component.
func (i *Source) IDPorts() (string, netsim.Ports) {
	return i.ID, ports(i, netsim.Combinational, pOut)
}

// SetIDPort implements netsim.Component.
func (i *Source) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(i, portID, in)
}

// Kind implements netsim.Component.
func (*Source) Kind() string { return "Source" }

// Clock implements netsim.Component.
func (i *Source) Clock(s *netsim.Simulator) error {
	v := netsim.Unknown
	if i.Fn != nil {
		v = i.Fn()
	}
	s.SetOutValue(i.ID, pOut, v)
	return nil
}

// Sink calls Fn with the value of its input on every tick. Fn is not persisted.
//
//	Inputs: in
//	Function: Fn(in)
//
type Sink struct {
	ID string             `json:"id"`
	In netsim.Input       `json:"in" sim:"in"`
	Fn func(netsim.Value) `json:"-"`
}

// NewSink returns a new Sink.
//
func NewSink(id string, in netsim.Input, fn func(netsim.Value)) *Sink {
	return &Sink{ID: id, In: in, Fn: fn}
}

// IDPorts implements netsim.Component.
func (o *Sink) IDPorts() (string, netsim.Ports) {
	return o.ID, ports(o, netsim.Combinational)
}

// SetIDPort implements netsim.Component.
func (o *Sink) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(o, portID, in)
}

// Kind implements netsim.Component.
func (*Sink) Kind() string { return "Sink" }

// Clock implements netsim.Component.
func (o *Sink) Clock(s *netsim.Simulator) error {
	if o.Fn != nil {
		o.Fn(s.GetInputValue(o.In))
	}
	return nil
}
