// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/db47h/netsim"
	"github.com/spf13/cobra"
)

var dumpGraph bool

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Describe a netlist",
	Long: `Dump loads the netlist FILE and prints its components in evaluation
order, with their input bindings and outputs. With --graph, a Graphviz
description of the loaded components is written instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := netsim.LoadFile(args[0])
		if err != nil {
			return err
		}
		if dumpGraph {
			memviz.Map(cmd.OutOrStdout(), store)
			return nil
		}
		s, err := netsim.New(store, options()...)
		if err != nil {
			return err
		}
		return dump(cmd.OutOrStdout(), s)
	},
}

func init() {
	dumpCmd.Flags().BoolVarP(&dumpGraph, "graph", "g", false, "write a Graphviz graph of the netlist")
	rootCmd.AddCommand(dumpCmd)
}

func dump(w io.Writer, s *netsim.Simulator) error {
	var b strings.Builder
	for _, id := range s.Order() {
		c, _ := s.Component(id)
		_, ps := c.IDPorts()
		fmt.Fprintf(&b, "%s (%s, %s)\n", id, c.Kind(), ps.OutType)
		for _, ip := range ps.Inputs {
			fmt.Fprintf(&b, "\t%s <- %v\n", ip.PortID, ip.Input)
		}
		for _, o := range ps.Outputs {
			v, _ := s.Peek(id, o)
			fmt.Fprintf(&b, "\t%s -> %v\n", o, v)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
