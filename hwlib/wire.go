// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"fmt"

	"github.com/db47h/netsim"
)

// Wire is a passive connection annotation: it records that the input port To
// reads output In. It has no outputs and its Clock function does nothing.
//
//	Inputs: in
//
type Wire struct {
	ID string       `json:"id"`
	In netsim.Input `json:"in" sim:"in"`
	To string       `json:"to,omitempty"`
}

// NewWire returns a new Wire.
//
func NewWire(id string, in netsim.Input, to string) *Wire { return &Wire{ID: id, In: in, To: to} }

// IDPorts implements netsim.Component.
func (w *Wire) IDPorts() (string, netsim.Ports) {
	return w.ID, ports(w, netsim.Combinational)
}

// SetIDPort implements netsim.Component.
func (w *Wire) SetIDPort(portID string, in netsim.Input) error {
	return netsim.SetInputPort(w, portID, in)
}

// Kind implements netsim.Component.
func (*Wire) Kind() string { return "Wire" }

// Clock implements netsim.Component.
func (*Wire) Clock(*netsim.Simulator) error { return nil }

// Autowire adds a Wire to the store for every input port whose producer id
// matches a component in the store. Wires are named id_wN where id is the
// consumer id and N the index of its input port. Existing wires are neither
// wired nor replaced.
//
// It returns the number of wires added.
//
func Autowire(store *netsim.Store) int {
	ids := make(map[string]bool, len(store.Components))
	for _, c := range store.Components {
		id, _ := c.IDPorts()
		ids[id] = true
	}
	var ws []netsim.Component
	for _, c := range store.Components {
		if _, ok := c.(*Wire); ok {
			continue
		}
		id, ps := c.IDPorts()
		for n, ip := range ps.Inputs {
			if !ids[ip.Input.ID] {
				continue
			}
			wid := fmt.Sprintf("%s_w%d", id, n)
			if ids[wid] {
				continue
			}
			ws = append(ws, NewWire(wid, ip.Input, id+"."+ip.PortID))
		}
	}
	store.Add(ws...)
	return len(ws)
}
