// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/logger"
	"github.com/db47h/netsim/memory"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type runFlags struct {
	simFlags
	cycles  uint64
	halt    bool
	dumpMem []string
}

var runOpts runFlags

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a netlist for a number of cycles",
	Long: `Run loads the netlist FILE and clocks it for the requested number of
cycles. Conditions reported by components are printed and, unless --halt is
set, do not stop the simulation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args[0], &runOpts)
	},
}

func init() {
	runOpts.register(runCmd)
	fl := runCmd.Flags()
	fl.Uint64VarP(&runOpts.cycles, "cycles", "n", 1, "number of cycles to run")
	fl.BoolVar(&runOpts.halt, "halt", false, "stop at the first cycle reporting a condition")
	fl.StringArrayVar(&runOpts.dumpMem, "dump-mem", nil, "hex dump the memory of component `id` when done")
	rootCmd.AddCommand(runCmd)
}

// memoryOf returns the backing store of a memory-backed component.
func memoryOf(s *netsim.Simulator, id string) (*memory.Memory, error) {
	c, ok := s.Component(id)
	if !ok {
		return nil, errors.Errorf("unknown component %q", id)
	}
	m, ok := c.(interface{ Memory() *memory.Memory })
	if !ok {
		return nil, errors.Errorf("component %q (%s) has no memory", id, c.Kind())
	}
	return m.Memory(), nil
}

func run(cmd *cobra.Command, name string, f *runFlags) error {
	s, probes, err := load(name, &f.simFlags)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printProbes(out, s, probes)

	start := time.Now()
	var conds int
	for i := uint64(0); i < f.cycles; i++ {
		if err = s.Clock(); err != nil {
			conds++
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			if f.halt {
				break
			}
		}
		printProbes(out, s, probes)
	}
	elapsed := time.Since(start)
	if verbose {
		logger.Logf("netsim", "%d components. %d cycles in %v, %d with conditions", s.Size(), s.Cycle()-1, elapsed, conds)
	}

	for _, id := range f.dumpMem {
		m, err := memoryOf(s, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s:\n", id)
		if err = m.Dump(out); err != nil {
			return err
		}
	}
	if f.halt && err != nil {
		return err
	}
	return nil
}
