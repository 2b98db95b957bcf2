// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// A NewComponentFn returns a new zero component of a registered kind, ready
// to be decoded into.
//
type NewComponentFn func() Component

var registry = struct {
	sync.RWMutex
	m map[string]NewComponentFn
}{m: make(map[string]NewComponentFn)}

// RegisterKind registers a component kind for persistence. It panics if kind
// is already registered.
//
func RegisterKind(kind string, fn NewComponentFn) {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.m[kind]; ok {
		panic("component kind " + kind + " already registered")
	}
	registry.m[kind] = fn
}

// Kinds returns the sorted list of registered component kinds.
//
func Kinds() []string {
	registry.RLock()
	defer registry.RUnlock()
	ks := make([]string, 0, len(registry.m))
	for k := range registry.m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func newComponent(kind string) (Component, error) {
	registry.RLock()
	fn := registry.m[kind]
	registry.RUnlock()
	if fn == nil {
		return nil, errors.Errorf("unknown component kind %q", kind)
	}
	return fn(), nil
}

// A Store is an ordered netlist of components. Order has no effect on
// dependency resolution but is the default evaluation order of the
// simulator and the iteration order of diagnostics.
//
type Store struct {
	Components []Component
}

// NewStore returns a new Store with the given components.
//
func NewStore(cs ...Component) *Store {
	return &Store{Components: cs}
}

// Add appends components to the store.
//
func (s *Store) Add(cs ...Component) {
	s.Components = append(s.Components, cs...)
}

// Lookup returns the first component with the given id.
//
func (s *Store) Lookup(id string) (Component, bool) {
	for _, c := range s.Components {
		if cid, _ := c.IDPorts(); cid == id {
			return c, true
		}
	}
	return nil, false
}

// IDs returns the component ids in store order.
//
func (s *Store) IDs() []string {
	ids := make([]string, len(s.Components))
	for i, c := range s.Components {
		ids[i], _ = c.IDPorts()
	}
	return ids
}

// Validate checks that component ids are unique and that every declared input
// references a declared output of a component in the store.
//
func (s *Store) Validate() error {
	outs := make(map[string]Ports, len(s.Components))
	for _, c := range s.Components {
		id, ps := c.IDPorts()
		if id == "" {
			return errors.Errorf("component of kind %q has an empty id", c.Kind())
		}
		if _, ok := outs[id]; ok {
			return errors.Errorf("duplicate component id %q", id)
		}
		outs[id] = ps
	}
	for _, c := range s.Components {
		id, ps := c.IDPorts()
		for _, ip := range ps.Inputs {
			p, ok := outs[ip.Input.ID]
			if !ok {
				return errors.Errorf("%s.%s: unknown component %q", id, ip.PortID, ip.Input.ID)
			}
			if !p.HasOutput(ip.Input.Field) {
				return errors.Errorf("%s.%s: component %q has no output %q", id, ip.PortID, ip.Input.ID, ip.Input.Field)
			}
		}
	}
	return nil
}

type storeEntry struct {
	Kind      string          `json:"kind"`
	Component json.RawMessage `json:"component"`
}

// MarshalJSON implements json.Marshaler. The store is encoded as an ordered
// array of entries tagged with the component kind.
//
func (s *Store) MarshalJSON() ([]byte, error) {
	es := make([]storeEntry, len(s.Components))
	for i, c := range s.Components {
		b, err := json.Marshal(c)
		if err != nil {
			id, _ := c.IDPorts()
			return nil, errors.Wrapf(err, "encode component %q", id)
		}
		es[i] = storeEntry{Kind: c.Kind(), Component: b}
	}
	return json.Marshal(es)
}

// UnmarshalJSON implements json.Unmarshaler. Component kinds must have been
// registered with RegisterKind.
//
func (s *Store) UnmarshalJSON(b []byte) error {
	var es []storeEntry
	if err := json.Unmarshal(b, &es); err != nil {
		return err
	}
	cs := make([]Component, 0, len(es))
	for i, e := range es {
		c, err := newComponent(e.Kind)
		if err != nil {
			return errors.Wrapf(err, "entry %d", i)
		}
		d := json.NewDecoder(bytes.NewReader(e.Component))
		d.DisallowUnknownFields()
		if err = d.Decode(c); err != nil {
			return errors.Wrapf(err, "decode entry %d (%s)", i, e.Kind)
		}
		cs = append(cs, c)
	}
	s.Components = cs
	return nil
}

// Save writes the JSON encoding of s to w.
//
func (s *Store) Save(w io.Writer) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// SaveFile writes the JSON encoding of s to the named file.
//
func (s *Store) SaveFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.Save(f)
}

// LoadStore decodes a Store from r.
//
func LoadStore(r io.Reader) (*Store, error) {
	s := new(Store)
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, errors.Wrap(err, "load store")
	}
	return s, nil
}

// LoadFile decodes a Store from the named file.
//
func LoadFile(name string) (*Store, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := LoadStore(f)
	return s, errors.Wrap(err, name)
}
