// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package statsview runs a local HTTP server with runtime statistics of the
// simulator process. Graphs are served at http://<addr>/debug/statsview and
// pprof data at http://<addr>/debug/pprof/.
//
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddr is the default listen address.
//
const DefaultAddr = "localhost:12600"

const url = "/debug/statsview"

// Launch starts the stats server in a new goroutine and reports its URL to
// output.
//
func Launch(addr string, output io.Writer) {
	if addr == "" {
		addr = DefaultAddr
	}
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()
	fmt.Fprintf(output, "stats server available at http://%s%s\n", addr, url)
}
