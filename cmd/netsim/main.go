// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command netsim loads and runs netlists saved with netsim.Store.Save.
//
// Usage:
//
//	netsim run FILE [--cycles N] [--mem id=path[@addr]]... [--probe id.field]...
//	netsim step FILE [--mem id=path[@addr]]... [--probe id.field]...
//	netsim dump FILE [--graph]
//
package main

import (
	"fmt"
	"os"

	"github.com/db47h/netsim"
	_ "github.com/db47h/netsim/hwlib" // component kinds
	"github.com/db47h/netsim/internal/logger"
	"github.com/db47h/netsim/internal/statsview"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	order     string
	history   int
	statsAddr string
	withStats bool
)

var rootCmd = &cobra.Command{
	Use:   "netsim",
	Short: "A cycle-driven netlist simulator",
	Long: `netsim loads a netlist saved as JSON and simulates it one clock
cycle at a time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetEcho(os.Stderr)
		}
		if withStats {
			statsview.Launch(statsAddr, cmd.ErrOrStderr())
		}
		switch order {
		case "store", "dependency":
		default:
			return errors.Errorf("invalid evaluation order %q", order)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "echo log entries to stderr")
	pf.StringVar(&order, "order", "store", "evaluation order: store or dependency")
	pf.IntVar(&history, "history", 0, "number of cycles that can be un-clocked")
	pf.BoolVar(&withStats, "statsview", false, "launch the runtime stats server")
	pf.StringVar(&statsAddr, "statsview-addr", statsview.DefaultAddr, "listen address of the stats server")
}

// options returns the simulator options selected by the persistent flags.
func options() []netsim.Option {
	var opts []netsim.Option
	if order == "dependency" {
		opts = append(opts, netsim.WithDependencyOrder())
	}
	if history > 0 {
		opts = append(opts, netsim.WithHistory(history))
	}
	return opts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
