// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// simFlags are the flags shared by commands that run a simulation.
type simFlags struct {
	mems   []string
	probes []string
}

func (f *simFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVarP(&f.mems, "mem", "m", nil, "seed memory component `id=path[@addr]` with the contents of a binary file")
	fl.StringArrayVarP(&f.probes, "probe", "p", nil, "print output `id.field` after each cycle")
}

// memSeed is a parsed --mem flag.
type memSeed struct {
	id   string
	path string
	addr uint64
}

func parseMemSeed(s string) (memSeed, error) {
	var m memSeed
	eq := strings.IndexByte(s, '=')
	if eq <= 0 || eq == len(s)-1 {
		return m, errors.Errorf("invalid memory seed %q: expected id=path[@addr]", s)
	}
	m.id, m.path = s[:eq], s[eq+1:]
	if at := strings.LastIndexByte(m.path, '@'); at >= 0 {
		a, err := strconv.ParseUint(m.path[at+1:], 0, 64)
		if err != nil {
			return m, errors.Wrapf(err, "invalid address in memory seed %q", s)
		}
		m.path, m.addr = m.path[:at], a
	}
	return m, nil
}

// readSeed returns the contents of r as a sparse memory image starting at addr.
func readSeed(r io.Reader, addr uint64) (map[uint64]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img := make(map[uint64]byte, len(b))
	for i, v := range b {
		img[addr+uint64(i)] = v
	}
	return img, nil
}

func seedFile(s *netsim.Simulator, m memSeed) error {
	f, err := os.Open(m.path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, err := readSeed(f, m.addr)
	if err != nil {
		return errors.Wrap(err, m.path)
	}
	return s.Seed(m.id, img)
}

// load loads a netlist, builds a simulator for it, seeds memories and
// resolves probes.
func load(name string, f *simFlags) (*netsim.Simulator, []netsim.Input, error) {
	store, err := netsim.LoadFile(name)
	if err != nil {
		return nil, nil, err
	}
	s, err := netsim.New(store, options()...)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return s, nil, nil
	}
	for _, ms := range f.mems {
		m, err := parseMemSeed(ms)
		if err != nil {
			return nil, nil, err
		}
		if err = seedFile(s, m); err != nil {
			return nil, nil, err
		}
	}
	// seeded memories must be visible to the first cycle
	if len(f.mems) > 0 {
		s.Reset()
	}
	var probes []netsim.Input
	for _, p := range f.probes {
		in, err := netsim.ParseInput(p)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := s.Peek(in.ID, in.Field); !ok {
			return nil, nil, errors.Errorf("probe %s: no such output", in)
		}
		probes = append(probes, in)
	}
	return s, probes, nil
}

func printProbes(w io.Writer, s *netsim.Simulator, probes []netsim.Input) {
	if len(probes) == 0 {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%6d:", s.Cycle())
	for _, p := range probes {
		v, _ := s.Peek(p.ID, p.Field)
		fmt.Fprintf(&b, " %s=%v", p, v)
	}
	b.WriteByte('\n')
	io.WriteString(w, b.String())
}
