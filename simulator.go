// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/db47h/netsim/internal/logger"
	"github.com/pkg/errors"
)

const logTag = "netsim"

// An Option configures a Simulator.
//
type Option func(*Simulator)

// WithDependencyOrder makes the simulator evaluate components in dependency
// order instead of store order. Sequential components are evaluated first and
// their outputs are only committed once all of them have been clocked, so that
// each one latches the values settled during the previous tick, including
// those of other sequential components. Combinational components follow,
// sorted so that producers come before consumers. New fails if the
// combinational dependencies form a cycle.
//
// Without this option, components are evaluated in store order, which must
// then approximate a topological order of the combinational logic.
//
func WithDependencyOrder() Option {
	return func(s *Simulator) { s.sorted = true }
}

// WithHistory enables UnClock for up to depth clock cycles.
//
func WithHistory(depth int) Option {
	return func(s *Simulator) { s.depth = depth }
}

// Simulator is a runnable netlist simulation.
//
// The state of the simulation maps each (component id, output name) pair to a
// signal Value. Components read and write that state during Clock sweeps;
// callers may read or write it freely between sweeps.
//
type Simulator struct {
	store   *Store
	order   []Component
	ids     map[string]Component
	state   map[Input]Value
	cycle   uint64
	sorted  bool
	depth   int
	history []map[Input]Value

	// sequential outputs written during the first nseq evaluations of a
	// sweep, committed to state when they are done.
	nseq     int
	latch    map[Input]Value
	latching bool
}

// New creates a new simulator for the given store, initializes every declared
// output to Uninitialized and runs one evaluation pass in order to settle
// combinational values. Conditions reported during that pass are logged.
//
// The cycle counter of the returned Simulator is 1.
//
func New(store *Store, opts ...Option) (*Simulator, error) {
	if store == nil || len(store.Components) == 0 {
		return nil, errors.New("empty component store")
	}
	if err := store.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid netlist")
	}
	s := &Simulator{
		store: store,
		ids:   make(map[string]Component, len(store.Components)),
	}
	for _, o := range opts {
		o(s)
	}
	for _, c := range store.Components {
		id, _ := c.IDPorts()
		s.ids[id] = c
	}
	if s.sorted {
		order, err := dependencyOrder(store.Components)
		if err != nil {
			return nil, err
		}
		s.order = order
		for _, c := range order {
			if _, ps := c.IDPorts(); ps.OutType != Sequential {
				break
			}
			s.nseq++
		}
		s.latch = make(map[Input]Value)
	} else {
		s.order = store.Components
	}
	s.settle()
	return s, nil
}

// settle initializes the state and runs the initial evaluation pass.
func (s *Simulator) settle() {
	s.cycle = 0
	s.state = make(map[Input]Value)
	for _, c := range s.order {
		id, ps := c.IDPorts()
		for _, o := range ps.Outputs {
			s.state[Input{id, o}] = Uninitialized
		}
	}
	if err := s.sweep(); err != nil {
		logger.Logf(logTag, "settle: %v", err)
	}
	s.cycle = 1
}

func (s *Simulator) sweep() error {
	var conds []*ComponentError
	s.latching = s.nseq > 0
	for i, c := range s.order {
		if i == s.nseq && s.latching {
			s.commit()
		}
		if err := c.Clock(s); err != nil {
			id, _ := c.IDPorts()
			conds = append(conds, &ComponentError{ID: id, Err: err})
		}
	}
	if s.latching {
		s.commit()
	}
	if len(conds) > 0 {
		return &SweepError{Cycle: s.cycle, Conditions: conds}
	}
	return nil
}

// Clock advances the simulation by one tick: every component is clocked once,
// in evaluation order.
//
// A condition returned by a component does not stop the sweep. All
// conditions are collected and returned as a *SweepError once every component
// has been clocked. The cycle counter is incremented in all cases.
//
func (s *Simulator) Clock() error {
	if s.depth > 0 {
		if len(s.history) == s.depth {
			copy(s.history, s.history[1:])
			s.history = s.history[:len(s.history)-1]
		}
		s.history = append(s.history, s.snapshot())
	}
	err := s.sweep()
	s.cycle++
	if err != nil {
		logger.Log(logTag, err.Error())
	}
	return err
}

// UnClock reverts the last Clock call. Components implementing Unclocker are
// asked to revert their private state. It returns an error whose cause is
// ErrNoHistory if history is disabled or exhausted.
//
func (s *Simulator) UnClock() error {
	if len(s.history) == 0 {
		return errors.Wrapf(ErrNoHistory, "cycle %d", s.cycle)
	}
	n := len(s.history) - 1
	s.state = s.history[n]
	s.history = s.history[:n]
	for i := len(s.order) - 1; i >= 0; i-- {
		if u, ok := s.order[i].(Unclocker); ok {
			u.UnClock()
		}
	}
	s.cycle--
	return nil
}

// Reset restores all components implementing Resetter to their initial state,
// reinitializes the simulation state and settles it again. Values poked with
// SetOutValue and the history are lost.
//
func (s *Simulator) Reset() {
	for _, c := range s.order {
		if r, ok := c.(Resetter); ok {
			r.Reset()
		}
	}
	s.history = s.history[:0]
	s.settle()
}

// commit publishes the latched sequential outputs.
func (s *Simulator) commit() {
	s.latching = false
	for k, v := range s.latch {
		s.state[k] = v
	}
	clear(s.latch)
}

func (s *Simulator) snapshot() map[Input]Value {
	m := make(map[Input]Value, len(s.state))
	for k, v := range s.state {
		m[k] = v
	}
	return m
}

// GetInputValue returns the current value of the output referenced by in.
// It panics if no such output exists, which denotes a malformed netlist.
//
func (s *Simulator) GetInputValue(in Input) Value {
	v, ok := s.state[in]
	if !ok {
		panic("unresolved input " + in.String())
	}
	return v
}

// SetOutValue sets the value of output field of component id.
//
func (s *Simulator) SetOutValue(id, field string, v Value) {
	if s.latching {
		s.latch[Input{id, field}] = v
		return
	}
	s.state[Input{id, field}] = v
}

// Peek returns the current value of output field of component id.
//
func (s *Simulator) Peek(id, field string) (Value, bool) {
	v, ok := s.state[Input{id, field}]
	return v, ok
}

// Cycle returns the number of evaluation passes completed, including the
// initial settle pass.
//
func (s *Simulator) Cycle() uint64 { return s.cycle }

// HistoryDepth returns the number of clock cycles that can be un-clocked, as
// set by WithHistory. Components implementing Unclocker need not keep more
// entries than that.
//
func (s *Simulator) HistoryDepth() int { return s.depth }

// Size returns the component count.
//
func (s *Simulator) Size() int { return len(s.order) }

// Store returns the simulated store.
//
func (s *Simulator) Store() *Store { return s.store }

// Component returns the component with the given id.
//
func (s *Simulator) Component(id string) (Component, bool) {
	c, ok := s.ids[id]
	return c, ok
}

// Order returns the ids of the components in evaluation order.
//
func (s *Simulator) Order() []string {
	ids := make([]string, len(s.order))
	for i, c := range s.order {
		ids[i], _ = c.IDPorts()
	}
	return ids
}

// Seed seeds the backing store of the memory-backed component id. The
// history is cleared: cycles clocked before seeding cannot be un-clocked.
//
func (s *Simulator) Seed(id string, contents map[uint64]byte) error {
	c, ok := s.ids[id]
	if !ok {
		return errors.Errorf("unknown component %q", id)
	}
	sd, ok := c.(Seeder)
	if !ok {
		return errors.Errorf("component %q (%s) has no memory", id, c.Kind())
	}
	sd.Seed(contents)
	s.history = s.history[:0]
	return nil
}

// dependencyOrder returns the components sorted so that sequential components
// come first, followed by combinational ones, every combinational producer
// coming before its consumers. Ties keep store order.
//
func dependencyOrder(cs []Component) ([]Component, error) {
	idx := make(map[string]int, len(cs))
	seq := make([]bool, len(cs))
	for i, c := range cs {
		id, ps := c.IDPorts()
		idx[id] = i
		seq[i] = ps.OutType == Sequential
	}
	deps := make([]int, len(cs))
	users := make([][]int, len(cs))
	order := make([]Component, 0, len(cs))
	done := make([]bool, len(cs))
	// sequential components read the state settled during the previous tick:
	// they run first.
	for i, c := range cs {
		if seq[i] {
			done[i] = true
			order = append(order, c)
		}
	}
	for i, c := range cs {
		if seq[i] {
			continue
		}
		_, ps := c.IDPorts()
		seen := make(map[int]bool)
		for _, ip := range ps.Inputs {
			p, ok := idx[ip.Input.ID]
			if !ok || seq[p] || seen[p] {
				continue
			}
			seen[p] = true
			deps[i]++
			users[p] = append(users[p], i)
		}
	}

	for len(order) < len(cs) {
		progress := false
		for i := range cs {
			if done[i] || deps[i] > 0 {
				continue
			}
			done[i] = true
			progress = true
			order = append(order, cs[i])
			for _, u := range users[i] {
				deps[u]--
			}
		}
		if !progress {
			var ids []string
			for i, c := range cs {
				if !done[i] {
					id, _ := c.IDPorts()
					ids = append(ids, id)
				}
			}
			return nil, errors.Errorf("combinational loop between components %v", ids)
		}
	}
	return order, nil
}
