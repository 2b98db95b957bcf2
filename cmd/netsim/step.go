// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/db47h/netsim/internal/logger"
	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var stepOpts simFlags

var stepCmd = &cobra.Command{
	Use:   "step FILE",
	Short: "Step through a netlist interactively",
	Long: `Step loads the netlist FILE and clocks it on key presses:

	space, enter  clock one cycle
	u             un-clock one cycle (requires --history)
	r             reset
	l             show the last log entries
	q             quit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return step(cmd, args[0], &stepOpts)
	},
}

func init() {
	stepOpts.register(stepCmd)
	rootCmd.AddCommand(stepCmd)
}

// rawMode switches the terminal attached to fd to non-canonical mode without
// echo. The returned function restores the previous settings.
func rawMode(fd uintptr) (restore func(), err error) {
	var orig unix.Termios
	if err = termios.Tcgetattr(fd, &orig); err != nil {
		return nil, errors.Wrap(err, "get terminal attributes")
	}
	raw := orig
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err = termios.Tcsetattr(fd, termios.TCSANOW, &raw); err != nil {
		return nil, errors.Wrap(err, "set terminal attributes")
	}
	return func() { termios.Tcsetattr(fd, termios.TCSANOW, &orig) }, nil
}

func step(cmd *cobra.Command, name string, f *simFlags) error {
	fd := os.Stdin.Fd()
	if !term.IsTerminal(int(fd)) {
		return errors.New("step requires an interactive terminal; use run instead")
	}
	s, probes, err := load(name, f)
	if err != nil {
		return err
	}
	restore, err := rawMode(fd)
	if err != nil {
		return err
	}
	defer restore()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	printProbes(out, s, probes)
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch buf[0] {
		case ' ', '\n', '\r':
			if err := s.Clock(); err != nil {
				fmt.Fprintln(errOut, err)
			}
		case 'u':
			if err := s.UnClock(); err != nil {
				fmt.Fprintln(errOut, err)
				continue
			}
		case 'r':
			s.Reset()
		case 'l':
			logger.Tail(errOut, 10)
			continue
		case 'q', 4: // ^D
			return nil
		default:
			continue
		}
		printProbes(out, s, probes)
	}
}
